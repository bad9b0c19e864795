// Package typesys answers the type questions code generation asks about
// loaded Go packages: erasure, identity, assignability, type arguments and
// direct supertypes.
//
// Go has no nominal subtyping, so a defined type's direct supertypes are the
// interfaces its declaring package asserts it implements:
//
//	var _ order.Comparable[Cents] = Cents(0)
//	var _ order.Comparable[*Tag] = (*Tag)(nil)
//
// The second assertion makes *Tag, not Tag, a subtype of the interface.
// An interface type's direct supertypes are the types it embeds.
package typesys

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
)

// DefaultCanonical is the qualified name of the self-ordering interface
const DefaultCanonical = "github.com/toyz/autoval/pkg/order.Comparable"

// Universe is a read-only view over a set of loaded packages
type Universe struct {
	canonicalName string
	canonical     *types.Named
	assertions    map[*types.TypeName][]assertion
}

// assertion is one var _ I = T(...) declaration. pointer is set when the
// asserted value is a *T.
type assertion struct {
	pointer bool
	iface   types.Type
}

// NewUniverse resolves the canonical self-ordering interface by qualified
// name and indexes interface assertions in pkgs. If no loaded package
// declares the canonical interface, Canonical returns nil and nothing is
// ever considered orderable.
func NewUniverse(canonical string, pkgs ...*Package) (*Universe, error) {
	if canonical == "" {
		canonical = DefaultCanonical
	}
	path, name, err := SplitQualified(canonical)
	if err != nil {
		return nil, err
	}

	u := &Universe{
		canonicalName: canonical,
		assertions:    make(map[*types.TypeName][]assertion),
	}

	if pkg := findPackage(path, pkgs); pkg != nil {
		named, err := lookupCanonical(pkg, name)
		if err != nil {
			return nil, err
		}
		u.canonical = named
	}

	for _, pkg := range pkgs {
		u.indexAssertions(pkg)
	}
	return u, nil
}

// SplitQualified splits "import/path.Name" into its path and name
func SplitQualified(qualified string) (path, name string, err error) {
	i := strings.LastIndex(qualified, ".")
	if i <= 0 || i == len(qualified)-1 || strings.HasSuffix(qualified[:i], "/") {
		return "", "", fmt.Errorf("invalid qualified type name %q: expected import/path.Name", qualified)
	}
	path, name = qualified[:i], qualified[i+1:]
	if !token.IsIdentifier(name) {
		return "", "", fmt.Errorf("invalid qualified type name %q: %q is not an identifier", qualified, name)
	}
	return path, name, nil
}

func findPackage(path string, pkgs []*Package) *types.Package {
	seen := make(map[*types.Package]bool)
	var walk func(p *types.Package) *types.Package
	walk = func(p *types.Package) *types.Package {
		if p == nil || seen[p] {
			return nil
		}
		seen[p] = true
		if p.Path() == path {
			return p
		}
		for _, imp := range p.Imports() {
			if found := walk(imp); found != nil {
				return found
			}
		}
		return nil
	}
	for _, pkg := range pkgs {
		if found := walk(pkg.Types); found != nil {
			return found
		}
	}
	return nil
}

func lookupCanonical(pkg *types.Package, name string) (*types.Named, error) {
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a type", pkg.Path(), name)
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a defined type", pkg.Path(), name)
	}
	if _, ok := named.Underlying().(*types.Interface); !ok {
		return nil, fmt.Errorf("%s.%s is not an interface", pkg.Path(), name)
	}
	if named.TypeParams().Len() != 1 {
		return nil, fmt.Errorf("%s.%s must take exactly one type parameter, has %d",
			pkg.Path(), name, named.TypeParams().Len())
	}
	return named.Origin(), nil
}

// indexAssertions records var _ I = T(...) declarations
func (u *Universe) indexAssertions(pkg *Package) {
	if pkg.Info == nil {
		return
	}
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				continue
			}
			for _, spec := range gen.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok || vs.Type == nil || !allBlank(vs.Names) {
					continue
				}
				iface := pkg.Info.TypeOf(vs.Type)
				if iface == nil || !types.IsInterface(iface) {
					continue
				}
				for _, value := range vs.Values {
					if obj, pointer := declaringType(pkg.Info.TypeOf(value)); obj != nil {
						u.addAssertion(obj, assertion{pointer: pointer, iface: iface})
					}
				}
			}
		}
	}
}

func (u *Universe) addAssertion(obj *types.TypeName, a assertion) {
	for _, existing := range u.assertions[obj] {
		if existing.pointer == a.pointer && types.Identical(existing.iface, a.iface) {
			return
		}
	}
	u.assertions[obj] = append(u.assertions[obj], a)
}

func allBlank(names []*ast.Ident) bool {
	for _, n := range names {
		if n.Name != "_" {
			return false
		}
	}
	return len(names) > 0
}

// declaringType returns the defined type behind T or *T and whether it was
// reached through a pointer.
func declaringType(t types.Type) (*types.TypeName, bool) {
	if t == nil {
		return nil, false
	}
	t = types.Unalias(t)
	pointer := false
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
		pointer = true
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil, false
	}
	return named.Origin().Obj(), pointer
}

// Canonical returns the generic origin of the self-ordering interface, or
// nil when it is not among the loaded packages.
func (u *Universe) Canonical() *types.Named {
	return u.canonical
}

// CanonicalName returns the qualified name the universe was built with
func (u *Universe) CanonicalName() string {
	return u.canonicalName
}

// Erasure returns the generic origin of an instantiated named type and t
// itself for everything else.
func (u *Universe) Erasure(t types.Type) types.Type {
	t = types.Unalias(t)
	if named, ok := t.(*types.Named); ok {
		return named.Origin()
	}
	return t
}

// SameType reports type identity
func (u *Universe) SameType(a, b types.Type) bool {
	return types.Identical(a, b)
}

// IsAssignable reports whether a value of type from may be assigned to to.
// Two generic origins are assignable only when they are the same declaration.
func (u *Universe) IsAssignable(from, to types.Type) bool {
	from, to = types.Unalias(from), types.Unalias(to)
	fn, fok := from.(*types.Named)
	tn, tok := to.(*types.Named)
	if fok && tok && (fn.TypeParams().Len() > 0 || tn.TypeParams().Len() > 0) {
		return fn.TypeArgs().Len() == 0 && tn.TypeArgs().Len() == 0 && fn.Obj() == tn.Obj()
	}
	return types.AssignableTo(from, to)
}

// TypeArgs returns the type arguments of an instantiated named type
func (u *Universe) TypeArgs(t types.Type) []types.Type {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}
	list := named.TypeArgs()
	args := make([]types.Type, list.Len())
	for i := range args {
		args[i] = list.At(i)
	}
	return args
}

// IsCanonical reports whether t is an instantiation of the canonical interface
func (u *Universe) IsCanonical(t types.Type) bool {
	if u.canonical == nil {
		return false
	}
	return u.IsAssignable(u.Erasure(t), u.canonical)
}

// DirectSupertypes returns the embedded types of an interface type or the
// asserted interfaces of any other defined type. T and *T are distinct: an
// assertion on (*T)(nil) is a supertype of *T only. Supertypes of
// supertypes are not included.
func (u *Universe) DirectSupertypes(t types.Type) []types.Type {
	t = types.Unalias(t)
	if iface, ok := t.(*types.Interface); ok {
		return embedded(iface)
	}
	if named, ok := t.(*types.Named); ok {
		if iface, ok := named.Underlying().(*types.Interface); ok {
			return embedded(iface)
		}
	}

	obj, pointer := declaringType(t)
	if obj == nil {
		return nil
	}
	if ptr, ok := t.(*types.Pointer); ok && types.IsInterface(ptr.Elem()) {
		return nil
	}
	var out []types.Type
	for _, a := range u.assertions[obj] {
		if a.pointer == pointer {
			out = append(out, a.iface)
		}
	}
	return out
}

// DeclaredInterfaces returns the interfaces a value type declares, in
// declaration order.
func (u *Universe) DeclaredInterfaces(named *types.Named) []types.Type {
	var out []types.Type
	for _, st := range u.DirectSupertypes(named) {
		if types.IsInterface(st) {
			out = append(out, st)
		}
	}
	return out
}

func embedded(iface *types.Interface) []types.Type {
	out := make([]types.Type, 0, iface.NumEmbeddeds())
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		et := iface.EmbeddedType(i)
		if _, ok := et.(*types.Union); ok {
			continue
		}
		out = append(out, et)
	}
	return out
}
