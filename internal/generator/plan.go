package generator

import (
	"go/types"

	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/extension"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/parser"
)

// plan is what the host decided for one value type: which extensions run,
// in which order, and the class each of them generates
type plan struct {
	ctx        *extension.Context
	extensions []extension.Extension
	classes    []string // classes[0] is the host base, the last one is final
	fields     []string // base struct field per property
}

// final returns the outermost class
func (p *plan) final() string {
	return p.classes[len(p.classes)-1]
}

// countingSink counts errors passing through to the wrapped sink
type countingSink struct {
	diag.Sink
	errors int
}

func (c *countingSink) Report(d diag.Diagnostic) {
	if d.Severity == diag.SeverityError {
		c.errors++
	}
	c.Sink.Report(d)
}

// planValueType asks every extension about vt. It returns false when vt
// gets no output; the reason has then been reported to sink.
func (g *Generator) planValueType(metadata *models.PackageMetadata, vt *models.ValueType, ctx *extension.Context, sink diag.Sink) (*plan, bool) {
	counter := &countingSink{Sink: sink}
	ctx.Diagnostics = counter
	subject := ctx.Subject()

	var applicable []extension.Extension
	consumed := make(map[string]bool)
	for _, ext := range g.extensions.Instantiate() {
		if !ext.Applicable(ctx) {
			continue
		}
		applicable = append(applicable, ext)
		for _, name := range ext.ConsumeMethods(ctx) {
			consumed[name] = true
		}
	}
	if counter.errors > 0 {
		return nil, false
	}

	var props []models.Property
	for _, p := range vt.Properties {
		if !consumed[p.MethodName] {
			props = append(props, p)
		}
	}
	fields := fieldNames(vt, props)
	for i := range props {
		props[i].HumanName = fields[i]
	}
	ctx.Properties = props

	for _, m := range vt.Methods {
		if consumed[m.Name()] || parser.IsAccessor(m) {
			continue
		}
		counter.Report(diag.Errorf(diag.CodeUnimplementedMethod, vt.Pos, subject,
			"%s.%s%s is not an accessor and no extension implements it",
			vt.Name, m.Name(), signature(m, metadata)))
	}
	if counter.errors > 0 {
		return nil, false
	}

	ordered, ok := orderExtensions(applicable, ctx, vt, subject, counter)
	if !ok {
		return nil, false
	}

	return &plan{
		ctx:        ctx,
		extensions: ordered,
		classes:    classNames(vt.Name, ordered),
		fields:     fields,
	}, true
}

// orderExtensions moves the extension that must be final to the end. Two
// such extensions cannot both be satisfied.
func orderExtensions(exts []extension.Extension, ctx *extension.Context, vt *models.ValueType, subject string, sink diag.Sink) ([]extension.Extension, bool) {
	var ordered []extension.Extension
	var final extension.Extension
	for _, ext := range exts {
		if !ext.MustBeFinal(ctx) {
			ordered = append(ordered, ext)
			continue
		}
		if final != nil {
			sink.Report(diag.Errorf(diag.CodeExtensionConflict, vt.Pos, subject,
				"extensions %s and %s both need to generate the final class of %s", final.Name(), ext.Name(), vt.Name))
			return nil, false
		}
		final = ext
	}
	if final != nil {
		ordered = append(ordered, final)
	}
	return ordered, true
}

// classNames returns the class chain: autoValPriceBase, autoValPrice<Ext>...,
// autoValPrice. Without extensions the host class is final itself.
func classNames(typeName string, exts []extension.Extension) []string {
	final := "autoVal" + typeName
	if len(exts) == 0 {
		return []string{final}
	}

	classes := []string{final + "Base"}
	for _, ext := range exts[:len(exts)-1] {
		classes = append(classes, final+ext.Name())
	}
	return append(classes, final)
}

// fieldNames picks a struct field per property that collides neither with
// a method of the value type nor with another field
func fieldNames(vt *models.ValueType, props []models.Property) []string {
	taken := make(map[string]bool, len(vt.Methods)+len(props))
	for _, m := range vt.Methods {
		taken[m.Name()] = true
	}
	fields := make([]string, len(props))
	for i, p := range props {
		name := p.HumanName
		for taken[name] {
			name += "_"
		}
		taken[name] = true
		fields[i] = name
	}
	return fields
}

func signature(m *types.Func, metadata *models.PackageMetadata) string {
	qualifier := func(p *types.Package) string {
		if p.Path() == metadata.PackagePath {
			return ""
		}
		return p.Name()
	}
	return types.TypeString(m.Type(), qualifier)[len("func"):]
}
