package typesys

import (
	"go/types"

	"github.com/dave/jennifer/jen"
)

// JenCode renders t as jennifer code. Named types are emitted qualified so
// the file's import block is derived from use.
func JenCode(t types.Type) jen.Code {
	switch t := t.(type) {
	case *types.Alias:
		return JenCode(types.Unalias(t))
	case *types.Named:
		obj := t.Obj()
		var stmt *jen.Statement
		if obj.Pkg() == nil {
			stmt = jen.Id(obj.Name())
		} else {
			stmt = jen.Qual(obj.Pkg().Path(), obj.Name())
		}
		if args := t.TypeArgs(); args.Len() > 0 {
			list := make([]jen.Code, args.Len())
			for i := range list {
				list[i] = JenCode(args.At(i))
			}
			stmt = stmt.Index(list...)
		}
		return stmt
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}
		return jen.Id(t.Name())
	case *types.Pointer:
		return jen.Op("*").Add(JenCode(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(JenCode(t.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(JenCode(t.Elem()))
	case *types.Map:
		return jen.Map(JenCode(t.Key())).Add(JenCode(t.Elem()))
	case *types.Chan:
		switch t.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(JenCode(t.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(JenCode(t.Elem()))
		default:
			return jen.Chan().Add(JenCode(t.Elem()))
		}
	case *types.TypeParam:
		return jen.Id(t.Obj().Name())
	case *types.Interface:
		if t.Empty() {
			return jen.Any()
		}
	}
	return jen.Id(types.TypeString(t, qualifyByName))
}

func qualifyByName(p *types.Package) string {
	return p.Name()
}
