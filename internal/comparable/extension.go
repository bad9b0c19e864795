// Package comparable synthesizes CompareTo for value types that declare
// order.Comparable of themselves. The method delegates to the ordering of
// the single accessor marked //autoval::compareby:
//
//	//autoval::value
//	type Price interface {
//		order.Comparable[Price]
//
//		//autoval::compareby
//		Amount() order.Float64
//	}
package comparable

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/toyz/autoval/internal/extension"
	"github.com/toyz/autoval/internal/typesys"
)

const (
	// ExtensionName is used in generated type and file names
	ExtensionName = "Comparable"

	// MethodName is the method the self-ordering interface declares
	MethodName = "CompareTo"
)

// Extension is the comparable extension. One instance serves one value type.
type Extension struct {
	result Result
}

// New creates an extension instance
func New() extension.Extension {
	return &Extension{}
}

func (e *Extension) Name() string {
	return ExtensionName
}

// Applicable gates on the declared interface and then validates the
// designated property. Validation failures are reported and make the
// extension inapplicable.
func (e *Extension) Applicable(ctx *extension.Context) bool {
	if !Applicable(ctx.Universe, ctx.Named(), ctx.Interfaces) {
		return false
	}

	e.result = Validate(ctx.Universe, ctx.Properties, ctx.Named())
	if !e.result.Valid {
		d := e.result.Diagnostic
		if !d.Pos.IsValid() {
			d.Pos = ctx.ValueType.Pos
		}
		ctx.Report(d)
		return false
	}
	return true
}

// ConsumeMethods claims the abstract CompareTo, the one method this extension
// implements. The designated accessor stays a property of the base class.
func (e *Extension) ConsumeMethods(ctx *extension.Context) []string {
	var consumed []string
	for _, m := range ctx.AbstractMethods() {
		if m.Name() == MethodName {
			consumed = append(consumed, m.Name())
		}
	}
	return consumed
}

// GenerateClass emits className embedding classToExtend, its constructor
// and the synthesized CompareTo.
func (e *Extension) GenerateClass(ctx *extension.Context, className, classToExtend string, isFinal bool) (string, error) {
	if !e.result.Valid {
		return "", fmt.Errorf("%s: GenerateClass called for %s before a successful Applicable", ExtensionName, ctx.Subject())
	}

	f := jen.NewFilePathName(ctx.PackagePath, ctx.PackageName)
	f.HeaderComment(extension.GeneratedHeader)

	f.Type().Id(className).Struct(jen.Id(classToExtend))
	f.Line()

	params := make([]jen.Code, 0, len(ctx.Properties))
	args := make([]jen.Code, 0, len(ctx.Properties))
	for _, p := range ctx.Properties {
		params = append(params, jen.Id(p.HumanName).Add(typesys.JenCode(p.Type)))
		args = append(args, jen.Id(p.HumanName))
	}
	f.Func().Id(extension.ConstructorName(className)).Params(params...).Id(className).Block(
		jen.Return(jen.Id(className).Values(
			jen.Id(extension.ConstructorName(classToExtend)).Call(args...),
		)),
	)
	f.Line()

	f.Add(Synthesize(e.result.Property, ctx.Named()).Code(className))

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("render %s: %w", className, err)
	}
	return buf.String(), nil
}

// MustBeFinal is always false: further extensions may embed the class
func (e *Extension) MustBeFinal(*extension.Context) bool {
	return false
}

var _ extension.Extension = (*Extension)(nil)
