package parser

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/toyz/autoval/internal/annotations"
	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// Parser implements the ValueTypeParser interface
type Parser struct {
	engine annotations.ParserEngine
}

// NewParser creates a parser validating annotations against the builtin schemas
func NewParser() *Parser {
	return &Parser{
		engine: annotations.NewParser(annotations.DefaultRegistry()),
	}
}

// ParsePackage extracts every //autoval::value interface of pkg in source order
func (p *Parser) ParsePackage(pkg *typesys.Package, sink diag.Sink) *models.PackageMetadata {
	metadata := &models.PackageMetadata{
		PackageName: pkg.Name,
		PackagePath: pkg.Path,
		Dir:         pkg.Dir,
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			switch gen.Tok {
			case token.TYPE:
				for _, spec := range gen.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && !gen.Lparen.IsValid() {
						doc = gen.Doc
					}
					if vt, ok := p.parseTypeSpec(pkg, ts, doc, sink); ok {
						metadata.ValueTypes = append(metadata.ValueTypes, vt)
					}
				}
			default:
				p.rejectMisplaced(pkg, gen.Doc, "", sink)
			}
		}
	}

	return metadata
}

// parseTypeSpec returns the value type declared by ts, if it is annotated
// and well formed
func (p *Parser) parseTypeSpec(pkg *typesys.Package, ts *ast.TypeSpec, doc *ast.CommentGroup, sink diag.Sink) (models.ValueType, bool) {
	subject := pkg.Name + "." + ts.Name.Name
	pos := pkg.Fset.Position(ts.Name.Pos())

	value, ok := p.valueAnnotation(pkg, doc, subject, sink)
	if !ok {
		if it, isIface := ts.Type.(*ast.InterfaceType); isIface {
			p.rejectStrayMarkers(pkg, it, subject, sink)
		}
		return models.ValueType{}, false
	}

	it, isIface := ts.Type.(*ast.InterfaceType)
	if !isIface {
		sink.Report(diag.Errorf(diag.CodeMalformedValueType, pos, subject,
			"//%s::value requires an interface type, %s is not an interface", annotations.Prefix, ts.Name.Name))
		return models.ValueType{}, false
	}
	if ts.TypeParams != nil {
		sink.Report(diag.Errorf(diag.CodeMalformedValueType, pos, subject,
			"generic value type %s is not supported", ts.Name.Name))
		return models.ValueType{}, false
	}

	obj, _ := pkg.Info.Defs[ts.Name].(*types.TypeName)
	if obj == nil {
		sink.Report(diag.Errorf(diag.CodeTypeCheck, pos, subject,
			"%s could not be type-checked", ts.Name.Name))
		return models.ValueType{}, false
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		sink.Report(diag.Errorf(diag.CodeMalformedValueType, pos, subject,
			"%s must be a defined interface type, not an alias", ts.Name.Name))
		return models.ValueType{}, false
	}

	methods, markers := p.collectMethods(pkg, it, named, subject, sink)
	vt := models.ValueType{
		Name:        ts.Name.Name,
		Named:       named,
		Pos:         pos,
		Constructor: value.GetString(ConstructorParam, models.DefaultConstructor(ts.Name.Name)),
		Methods:     methods,
		Properties:  properties(pkg, methods, markers),
	}
	return vt, true
}

// valueAnnotation finds //autoval::value in doc. Invalid and misplaced
// annotations are reported.
func (p *Parser) valueAnnotation(pkg *typesys.Package, doc *ast.CommentGroup, subject string, sink diag.Sink) (*annotations.ParsedAnnotation, bool) {
	var found *annotations.ParsedAnnotation
	for _, a := range p.parseGroup(pkg, doc, subject, sink) {
		switch {
		case a.Type != annotations.ValueAnnotation:
			sink.Report(diag.Errorf(diag.CodeInvalidAnnotation, toPosition(a.Location), subject,
				"//%s::%s applies to interface methods, not types", annotations.Prefix, a.Type))
		case found != nil:
			sink.Report(diag.Errorf(diag.CodeInvalidAnnotation, toPosition(a.Location), subject,
				"duplicate //%s::value", annotations.Prefix))
		default:
			found = a
		}
	}
	return found, found != nil
}

// collectMethods returns every method of the interface in declaration
// order, methods of embedded interfaces in place of the embedding, and the
// markers of explicitly declared methods.
func (p *Parser) collectMethods(pkg *typesys.Package, it *ast.InterfaceType, named *types.Named, subject string, sink diag.Sink) ([]*types.Func, map[string]annotations.MarkerSet) {
	seen := make(map[string]bool)
	markers := make(map[string]annotations.MarkerSet)
	var methods []*types.Func

	add := func(fn *types.Func) {
		if fn == nil || seen[fn.Name()] {
			return
		}
		seen[fn.Name()] = true
		methods = append(methods, fn)
	}

	for _, field := range it.Methods.List {
		if len(field.Names) == 0 {
			p.rejectMisplaced(pkg, field.Doc, subject, sink)
			if t := pkg.Info.TypeOf(field.Type); t != nil {
				if iface, ok := t.Underlying().(*types.Interface); ok {
					for i := 0; i < iface.NumMethods(); i++ {
						add(iface.Method(i))
					}
				}
			}
			continue
		}

		var set annotations.MarkerSet
		for _, a := range p.parseGroup(pkg, field.Doc, subject, sink) {
			m, ok := annotations.MarkerFor(a.Type)
			if !ok {
				sink.Report(diag.Errorf(diag.CodeInvalidAnnotation, toPosition(a.Location), subject,
					"//%s::%s applies to types, not methods", annotations.Prefix, a.Type))
				continue
			}
			set = set.With(m)
		}
		for _, name := range field.Names {
			fn, _ := pkg.Info.Defs[name].(*types.Func)
			add(fn)
			if !set.IsEmpty() {
				markers[name.Name] = set
			}
		}
	}

	// Anything the syntax walk could not attribute, e.g. when an embedded
	// type failed to type-check
	iface := named.Underlying().(*types.Interface)
	for i := 0; i < iface.NumMethods(); i++ {
		add(iface.Method(i))
	}
	return methods, markers
}

// properties turns the niladic single-result methods into properties
func properties(pkg *typesys.Package, methods []*types.Func, markers map[string]annotations.MarkerSet) []models.Property {
	var accessors []*types.Func
	for _, fn := range methods {
		if IsAccessor(fn) {
			accessors = append(accessors, fn)
		}
	}

	names := make([]string, len(accessors))
	for i, fn := range accessors {
		names[i] = fn.Name()
	}
	human := models.HumanNames(names)

	props := make([]models.Property, len(accessors))
	for i, fn := range accessors {
		result := fn.Type().(*types.Signature).Results().At(0).Type()
		props[i] = models.Property{
			MethodName: fn.Name(),
			HumanName:  human[i],
			Type:       result,
			TypeString: types.TypeString(result, types.RelativeTo(pkg.Types)),
			Markers:    markers[fn.Name()],
			Location:   pkg.Fset.Position(fn.Pos()),
		}
	}
	return props
}

// IsAccessor reports whether fn takes no parameters and returns one value
func IsAccessor(fn *types.Func) bool {
	sig := fn.Type().(*types.Signature)
	return sig.Params().Len() == 0 && sig.Results().Len() == 1
}

// rejectStrayMarkers reports method markers inside interfaces that are not
// value types
func (p *Parser) rejectStrayMarkers(pkg *typesys.Package, it *ast.InterfaceType, subject string, sink diag.Sink) {
	for _, field := range it.Methods.List {
		for _, a := range p.parseGroup(pkg, field.Doc, subject, sink) {
			sink.Report(diag.Warnf(diag.CodeInvalidAnnotation, toPosition(a.Location), subject,
				"//%s::%s has no effect outside a //%s::value interface", annotations.Prefix, a.Type, annotations.Prefix))
		}
	}
}

// rejectMisplaced reports annotations on declarations they cannot apply to
func (p *Parser) rejectMisplaced(pkg *typesys.Package, doc *ast.CommentGroup, subject string, sink diag.Sink) {
	for _, a := range p.parseGroup(pkg, doc, subject, sink) {
		sink.Report(diag.Warnf(diag.CodeInvalidAnnotation, toPosition(a.Location), subject,
			"//%s::%s is not attached to an interface or interface method and has no effect", annotations.Prefix, a.Type))
	}
}

// parseGroup parses every annotation in a comment group. Malformed ones
// are reported and dropped.
func (p *Parser) parseGroup(pkg *typesys.Package, doc *ast.CommentGroup, subject string, sink diag.Sink) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}
	var out []*annotations.ParsedAnnotation
	for _, c := range doc.List {
		if !annotations.IsAnnotation(c.Text) {
			continue
		}
		pos := pkg.Fset.Position(c.Pos())
		loc := annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
		parsed, err := p.engine.ParseAnnotation(c.Text, loc)
		if err != nil {
			reportAnnotationError(sink, err, pos, subject)
			continue
		}
		out = append(out, parsed)
	}
	return out
}

func toPosition(loc annotations.SourceLocation) token.Position {
	return token.Position{Filename: loc.File, Line: loc.Line, Column: loc.Column}
}

var _ ValueTypeParser = (*Parser)(nil)
