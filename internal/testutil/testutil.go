// Package testutil type-checks in-memory Go sources for package tests.
package testutil

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/autoval/internal/typesys"
)

// OrderPath is the import path of the runtime ordering package
const OrderPath = "github.com/toyz/autoval/pkg/order"

// Source is one in-memory package: file name to contents
type Source struct {
	Path  string
	Files map[string]string
}

// Order returns a fixture of the runtime ordering package holding the
// Comparable interface and two asserted wrappers.
func Order() Source {
	return Source{
		Path: OrderPath,
		Files: map[string]string{
			"order.go": `package order

type Comparable[T any] interface {
	CompareTo(other T) int
}

type Float64 float64

func (f Float64) CompareTo(other Float64) int {
	switch {
	case f < other:
		return -1
	case f > other:
		return 1
	}
	return 0
}

type String string

func (s String) CompareTo(other String) int {
	switch {
	case s < other:
		return -1
	case s > other:
		return 1
	}
	return 0
}

var (
	_ Comparable[Float64] = Float64(0)
	_ Comparable[String]  = String("")
)
`,
		},
	}
}

// Program is the result of loading a set of sources
type Program struct {
	Fset     *token.FileSet
	packages map[string]*typesys.Package
	order    []string
}

// Load parses and type-checks every source. Imports between sources are
// resolved in memory; anything else is read from GOROOT.
func Load(t testing.TB, sources ...Source) *Program {
	t.Helper()

	prog := &Program{
		Fset:     token.NewFileSet(),
		packages: make(map[string]*typesys.Package),
	}
	bySrc := make(map[string]Source, len(sources))
	for _, src := range sources {
		bySrc[src.Path] = src
	}

	imp := &memImporter{
		prog:     prog,
		sources:  bySrc,
		fallback: importer.ForCompiler(prog.Fset, "source", nil).(types.ImporterFrom),
	}
	for _, src := range sources {
		_, err := imp.Import(src.Path)
		require.NoError(t, err, "type-check %s", src.Path)
	}
	return prog
}

// Package returns the loaded package with the given import path
func (p *Program) Package(path string) *typesys.Package {
	return p.packages[path]
}

// Packages returns every loaded package in load order
func (p *Program) Packages() []*typesys.Package {
	out := make([]*typesys.Package, 0, len(p.order))
	for _, path := range p.order {
		out = append(out, p.packages[path])
	}
	return out
}

// Named looks up a defined type by package path and name
func (p *Program) Named(t testing.TB, pkgPath, name string) *types.Named {
	t.Helper()
	pkg := p.packages[pkgPath]
	require.NotNil(t, pkg, "package %s not loaded", pkgPath)
	obj, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName)
	require.True(t, ok, "%s.%s is not a type", pkgPath, name)
	named, ok := obj.Type().(*types.Named)
	require.True(t, ok, "%s.%s is not a defined type", pkgPath, name)
	return named
}

// Universe builds a universe over every loaded package with the default
// canonical interface.
func (p *Program) Universe(t testing.TB) *typesys.Universe {
	t.Helper()
	u, err := typesys.NewUniverse(typesys.DefaultCanonical, p.Packages()...)
	require.NoError(t, err)
	return u
}

type memImporter struct {
	prog     *Program
	sources  map[string]Source
	fallback types.ImporterFrom
}

func (m *memImporter) Import(importPath string) (*types.Package, error) {
	return m.ImportFrom(importPath, "", 0)
}

func (m *memImporter) ImportFrom(importPath, dir string, mode types.ImportMode) (*types.Package, error) {
	if pkg, ok := m.prog.packages[importPath]; ok {
		return pkg.Types, nil
	}
	src, ok := m.sources[importPath]
	if !ok {
		return m.fallback.ImportFrom(importPath, dir, mode)
	}

	names := make([]string, 0, len(src.Files))
	for name := range src.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	dirName := path.Join("/src", importPath)
	files := make([]*ast.File, 0, len(names))
	paths := make([]string, 0, len(names))
	for _, name := range names {
		filename := path.Join(dirName, name)
		f, err := parser.ParseFile(m.prog.Fset, filename, src.Files[name], parser.ParseComments)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
		paths = append(paths, filename)
	}

	info := typesys.NewInfo()
	conf := types.Config{Importer: m}
	tpkg, err := conf.Check(importPath, m.prog.Fset, files, info)
	if err != nil {
		return nil, err
	}

	m.prog.packages[importPath] = &typesys.Package{
		Path:   importPath,
		Name:   tpkg.Name(),
		Dir:    dirName,
		Fset:   m.prog.Fset,
		Files:  paths,
		Syntax: files,
		Types:  tpkg,
		Info:   info,
	}
	m.prog.order = append(m.prog.order, importPath)
	return tpkg, nil
}
