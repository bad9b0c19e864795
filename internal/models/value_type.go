package models

import (
	"go/token"
	"go/types"
)

// ValueType is an interface annotated with //autoval::value
type ValueType struct {
	Name        string         // declared type name
	Named       *types.Named   // declared type
	Pos         token.Position // type declaration
	Constructor string         // generated constructor name
	Properties  []Property     // accessors in declaration order
	Methods     []*types.Func  // every abstract method, embedded ones included
}

// Property returns the property backed by the given accessor
func (v *ValueType) Property(methodName string) (Property, bool) {
	for _, p := range v.Properties {
		if p.MethodName == methodName {
			return p, true
		}
	}
	return Property{}, false
}

// DefaultConstructor returns new<Name>
func DefaultConstructor(typeName string) string {
	return "new" + typeName
}
