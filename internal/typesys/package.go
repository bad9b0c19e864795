package typesys

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Package is a type-checked Go package together with its syntax. Loaders
// produce it from go/packages or from in-memory sources.
type Package struct {
	Path   string
	Name   string
	Dir    string
	Fset   *token.FileSet
	Files  []string // absolute paths, parallel to Syntax
	Syntax []*ast.File
	Types  *types.Package
	Info   *types.Info
}

// NewInfo allocates a types.Info with every map the parser and the
// universe consult.
func NewInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Instances:  make(map[*ast.Ident]types.Instance),
	}
}
