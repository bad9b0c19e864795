package generator

import (
	"bytes"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/extension"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// renderBaseFile renders the host classes of every planned value type into
// one file, in source order
func (g *Generator) renderBaseFile(metadata *models.PackageMetadata, plans []*plan) (models.GeneratedFile, error) {
	path := filepath.Join(metadata.Dir, g.outputFile)

	f := jen.NewFilePathName(metadata.PackagePath, metadata.PackageName)
	f.HeaderComment(extension.GeneratedHeader)

	for _, p := range plans {
		renderBaseClass(f, p)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return models.GeneratedFile{}, errors.WrapGenerateError("base", path, err)
	}
	formatted, err := formatSource(path, buf.Bytes())
	if err != nil {
		return models.GeneratedFile{}, err
	}
	return models.GeneratedFile{Path: path, Content: formatted}, nil
}

// renderBaseClass emits the struct holding the property values, its
// constructor and accessors, the public constructor and an assertion that
// the final class implements the value type.
func renderBaseClass(f *jen.File, p *plan) {
	vt := p.ctx.ValueType
	class := p.classes[0]
	props := p.ctx.Properties

	fields := make([]jen.Code, len(props))
	params := make([]jen.Code, len(props))
	args := make([]jen.Code, len(props))
	values := jen.Dict{}
	for i, prop := range props {
		field := p.fields[i]
		fields[i] = jen.Id(field).Add(typesys.JenCode(prop.Type))
		params[i] = jen.Id(field).Add(typesys.JenCode(prop.Type))
		args[i] = jen.Id(field)
		values[jen.Id(field)] = jen.Id(field)
	}

	f.Type().Id(class).Struct(fields...)
	f.Line()

	f.Func().Id(extension.ConstructorName(class)).Params(params...).Id(class).Block(
		jen.Return(jen.Id(class).Values(values)),
	)
	f.Line()

	for i, prop := range props {
		f.Func().Params(jen.Id("v").Id(class)).Id(prop.MethodName).Params().Add(typesys.JenCode(prop.Type)).Block(
			jen.Return(jen.Id("v").Dot(p.fields[i])),
		)
		f.Line()
	}

	f.Commentf("%s creates a %s", vt.Constructor, vt.Name)
	f.Func().Id(vt.Constructor).Params(params...).Id(vt.Name).Block(
		jen.Return(jen.Id(extension.ConstructorName(p.final())).Call(args...)),
	)
	f.Line()

	f.Var().Id("_").Id(vt.Name).Op("=").Id(p.final()).Values()
	f.Line()
}
