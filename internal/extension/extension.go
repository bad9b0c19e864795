// Package extension defines how code generators plug into value type
// generation. The host discovers a value type's properties and writes the
// base implementation; each applicable extension contributes a struct that
// embeds the previous one, so the outermost struct carries every
// extension's methods.
package extension

import (
	"go/types"
	"strings"

	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// Extension contributes generated code to value types it applies to.
// Instances are created per value type and may keep state between
// Applicable and GenerateClass.
type Extension interface {
	// Name identifies the extension in generated type names and diagnostics
	Name() string

	// Applicable reports whether the extension wants to generate code for
	// the value type. Problems that make the value type unusable are
	// reported to ctx.Diagnostics and yield false.
	Applicable(ctx *Context) bool

	// ConsumeMethods returns abstract methods the extension implements so
	// the host neither treats them as properties nor reports them missing
	ConsumeMethods(ctx *Context) []string

	// GenerateClass returns a complete Go source file declaring className,
	// which embeds classToExtend. isFinal is set for the outermost class.
	GenerateClass(ctx *Context, className, classToExtend string, isFinal bool) (string, error)

	// MustBeFinal reports whether the extension's class has to be the
	// outermost one
	MustBeFinal(ctx *Context) bool
}

// Factory creates a fresh extension instance
type Factory func() Extension

// Context is what an extension sees of one value type
type Context struct {
	PackageName string
	PackagePath string
	ValueType   *models.ValueType
	Interfaces  []types.Type // interfaces the value type declares
	Universe    *typesys.Universe
	Diagnostics diag.Sink

	// Properties are the accessors. Before GenerateClass the host drops
	// consumed methods and sets HumanName to the base struct field.
	Properties []models.Property
}

// Named returns the value type's declared type
func (c *Context) Named() *types.Named {
	return c.ValueType.Named
}

// TypeName returns the value type's name
func (c *Context) TypeName() string {
	return c.ValueType.Name
}

// AbstractMethods returns every abstract method of the value type
func (c *Context) AbstractMethods() []*types.Func {
	return c.ValueType.Methods
}

// Report sends a diagnostic to the context's sink
func (c *Context) Report(d diag.Diagnostic) {
	if c.Diagnostics != nil {
		c.Diagnostics.Report(d)
	}
}

// Subject returns the qualified value type name used in diagnostics
func (c *Context) Subject() string {
	return c.PackageName + "." + c.ValueType.Name
}

// GeneratedHeader is the header comment of every generated file
const GeneratedHeader = "Code generated by autoval. DO NOT EDIT."

// ConstructorName returns the unexported constructor name for a generated
// class, e.g. newAutoValPrice for autoValPrice.
func ConstructorName(className string) string {
	if className == "" {
		return "new"
	}
	return "new" + strings.ToUpper(className[:1]) + className[1:]
}
