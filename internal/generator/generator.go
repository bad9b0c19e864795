package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/extension"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/parser"
	"github.com/toyz/autoval/internal/registry"
	"github.com/toyz/autoval/internal/typesys"
)

// DefaultOutputFile holds the host classes of every value type in a package
const DefaultOutputFile = parser.GeneratedFilePrefix + "values.go"

// Generator implements the CodeGenerator interface
type Generator struct {
	extensions registry.ExtensionRegistry
	outputFile string
}

// NewGenerator creates a generator running the built-in extensions
func NewGenerator() *Generator {
	return NewGeneratorWithRegistry(registry.NewDefaultRegistry(), DefaultOutputFile)
}

// NewGeneratorWithRegistry creates a generator running the extensions of reg
// and writing host classes to outputFile
func NewGeneratorWithRegistry(reg registry.ExtensionRegistry, outputFile string) *Generator {
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}
	return &Generator{
		extensions: reg,
		outputFile: outputFile,
	}
}

// GeneratePackage renders every value type of a package. Value types with
// diagnostics are listed in Skipped; the returned error is reserved for
// failures of the generator itself.
func (g *Generator) GeneratePackage(metadata *models.PackageMetadata, u *typesys.Universe, sink diag.Sink) (*models.GeneratedPackage, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}

	out := &models.GeneratedPackage{
		PackagePath: metadata.PackagePath,
		Dir:         metadata.Dir,
	}

	var plans []*plan
	for i := range metadata.ValueTypes {
		vt := &metadata.ValueTypes[i]
		ctx := &extension.Context{
			PackageName: metadata.PackageName,
			PackagePath: metadata.PackagePath,
			ValueType:   vt,
			Interfaces:  u.DeclaredInterfaces(vt.Named),
			Properties:  vt.Properties,
			Universe:    u,
		}
		p, ok := g.planValueType(metadata, vt, ctx, sink)
		if !ok {
			out.Skipped = append(out.Skipped, vt.Name)
			continue
		}
		plans = append(plans, p)
	}

	if len(plans) == 0 {
		return out, nil
	}

	base, err := g.renderBaseFile(metadata, plans)
	if err != nil {
		return nil, err
	}
	out.Files = append(out.Files, base)

	for _, p := range plans {
		files, err := g.renderExtensions(metadata, p)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, files...)
	}
	return out, nil
}

// renderExtensions asks every extension of a plan for its class. Each
// class embeds the one before it in the chain.
func (g *Generator) renderExtensions(metadata *models.PackageMetadata, p *plan) ([]models.GeneratedFile, error) {
	var files []models.GeneratedFile
	for i, ext := range p.extensions {
		className := p.classes[i+1]
		classToExtend := p.classes[i]
		isFinal := i == len(p.extensions)-1

		src, err := ext.GenerateClass(p.ctx, className, classToExtend, isFinal)
		if err != nil {
			return nil, errors.WrapGenerateError(ext.Name(), className, err)
		}

		path := filepath.Join(metadata.Dir, extensionFile(p.ctx.TypeName(), ext.Name()))
		formatted, err := formatSource(path, []byte(src))
		if err != nil {
			return nil, err
		}
		files = append(files, models.GeneratedFile{Path: path, Content: formatted})
	}
	return files, nil
}

// extensionFile names the file of one extension class, e.g.
// autogen_price_comparable.go
func extensionFile(typeName, extName string) string {
	return parser.GeneratedFilePrefix + strings.ToLower(typeName) + "_" + strings.ToLower(extName) + ".go"
}

var _ CodeGenerator = (*Generator)(nil)
