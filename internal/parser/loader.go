package parser

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/typesys"
)

// LoadMode is what the loader asks go/packages for. Dependencies are loaded
// with syntax so interface assertions in them can be indexed.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// LoadResult holds the loaded packages
type LoadResult struct {
	Roots    []*typesys.Package // packages matching the patterns, in load order
	All      []*typesys.Package // roots and every dependency with type information
	Warnings []string           // type errors, tolerated because generated code may be missing
}

// Loader loads and type-checks packages of a module
type Loader struct {
	dir string
}

// NewLoader creates a loader running in the module directory dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load loads the packages in dirs. Generated files already present in those
// directories are hidden from the type checker so stale output cannot break
// loading.
func (l *Loader) Load(ctx context.Context, dirs ...string) (*LoadResult, error) {
	overlay, err := generatedOverlay(dirs)
	if err != nil {
		return nil, err
	}

	patterns := make([]string, len(dirs))
	for i, dir := range dirs {
		patterns[i] = dir
		if !filepath.IsAbs(dir) && !strings.HasPrefix(dir, ".") {
			patterns[i] = "./" + dir
		}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     l.dir,
		Overlay: overlay,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.WrapLoadError(patterns, err)
	}

	result := &LoadResult{}
	var loadErrs *errors.MultipleErrors
	for _, pkg := range pkgs {
		var details []string
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				result.Warnings = append(result.Warnings, e.Error())
				continue
			}
			details = append(details, e.Error())
		}
		if len(details) > 0 {
			errors.AddToMultiple(&loadErrs, errors.NewLoadError(pkg.PkgPath, details))
		}
	}
	if loadErrs != nil {
		if loadErrs.Count() == 1 {
			return nil, loadErrs.Errors[0]
		}
		return nil, loadErrs
	}

	roots := make(map[*packages.Package]bool, len(pkgs))
	for _, pkg := range pkgs {
		roots[pkg] = true
	}

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if pkg.Types == nil {
			return
		}
		converted := convert(pkg)
		result.All = append(result.All, converted)
		if roots[pkg] {
			result.Roots = append(result.Roots, converted)
		}
	})

	return result, nil
}

func convert(pkg *packages.Package) *typesys.Package {
	dir := ""
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}
	return &typesys.Package{
		Path:   pkg.PkgPath,
		Name:   pkg.Name,
		Dir:    dir,
		Fset:   pkg.Fset,
		Files:  pkg.CompiledGoFiles,
		Syntax: pkg.Syntax,
		Types:  pkg.Types,
		Info:   pkg.TypesInfo,
	}
}

// generatedOverlay replaces every generated file in dirs with just its
// package clause
func generatedOverlay(dirs []string) (map[string][]byte, error) {
	overlay := make(map[string][]byte)
	fset := token.NewFileSet()
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, GeneratedFilePattern))
		if err != nil {
			return nil, errors.WrapFileSystemError("glob", dir, err)
		}
		for _, path := range matches {
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, errors.WrapFileSystemError("resolve", path, err)
			}
			src, err := os.ReadFile(abs)
			if err != nil {
				return nil, errors.WrapFileSystemError("read", abs, err)
			}
			f, err := parser.ParseFile(fset, abs, src, parser.PackageClauseOnly)
			if err != nil {
				// Unparseable output is left for the loader to report
				continue
			}
			overlay[abs] = []byte(fmt.Sprintf("package %s\n", f.Name.Name))
		}
	}
	return overlay, nil
}
