package comparable

import (
	"go/types"

	"github.com/dave/jennifer/jen"

	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// Method is a synthesized CompareTo before rendering
type Method struct {
	Name      string       // method name, CompareTo
	Receiver  string       // receiver identifier
	Param     string       // parameter identifier, other
	ParamType *types.Named // the value type itself
	Returns   types.Type   // int
	Accessor  string       // designated accessor both sides are read through
}

// Synthesize builds the CompareTo method delegating to the designated
// property. It assumes Validate accepted p.
func Synthesize(p models.Property, self *types.Named) Method {
	return Method{
		Name:      MethodName,
		Receiver:  "v",
		Param:     "other",
		ParamType: self,
		Returns:   types.Typ[types.Int],
		Accessor:  p.MethodName,
	}
}

// Code renders the method on className:
//
//	func (v className) CompareTo(other Self) int {
//		return v.Accessor().CompareTo(other.Accessor())
//	}
func (m Method) Code(className string) jen.Code {
	return jen.Func().
		Params(jen.Id(m.Receiver).Id(className)).
		Id(m.Name).
		Params(jen.Id(m.Param).Add(typesys.JenCode(m.ParamType))).
		Add(typesys.JenCode(m.Returns)).
		Block(
			jen.Return(
				jen.Id(m.Receiver).Dot(m.Accessor).Call().
					Dot(MethodName).
					Call(jen.Id(m.Param).Dot(m.Accessor).Call()),
			),
		)
}
