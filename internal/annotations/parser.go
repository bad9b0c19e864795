package annotations

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParserEngine interface defines the core parsing functionality
type ParserEngine interface {
	// ParseAnnotation parses a single comment line into an annotation
	ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error)

	// ValidateAnnotation checks an annotation against its registered schema
	ValidateAnnotation(annotation *ParsedAnnotation) error
}

// annotationGrammar is the participle grammar for the text after the comment
// slashes, e.g. autoval::value -Constructor=makePrice
type annotationGrammar struct {
	Prefix string          `parser:"@Ident '::'"`
	Kind   string          `parser:"@Ident"`
	Params []*paramGrammar `parser:"@@*"`
}

type paramGrammar struct {
	Name  string  `parser:"'-' @Ident"`
	Value *string `parser:"( '=' @(String | Ident | Number) )?"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Separator", Pattern: `::`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[-=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type parser struct {
	grammar   *participle.Parser[annotationGrammar]
	registry  AnnotationRegistry
	validator SchemaValidator
}

// NewParser creates a parser that validates against the given registry. A nil
// registry skips schema validation.
func NewParser(registry AnnotationRegistry) ParserEngine {
	return &parser{
		grammar: participle.MustBuild[annotationGrammar](
			participle.Lexer(annotationLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		),
		registry:  registry,
		validator: NewValidator(),
	}
}

// IsAnnotation reports whether a comment line is an autoval annotation
func IsAnnotation(comment string) bool {
	body, ok := stripSlashes(comment)
	return ok && strings.HasPrefix(body, Prefix+"::")
}

func stripSlashes(comment string) (string, bool) {
	input := strings.TrimSpace(comment)
	if !strings.HasPrefix(input, "//") {
		return "", false
	}
	return strings.TrimLeftFunc(input[2:], unicode.IsSpace), true
}

func (p *parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	body, ok := stripSlashes(comment)
	if !ok {
		return nil, &SyntaxError{
			Msg:  "annotation must start with '//'",
			Loc:  location,
			Hint: "Use format: //autoval::<kind> [-Param=value]",
		}
	}

	ast, err := p.grammar.ParseString(location.File, body)
	if err != nil {
		return nil, p.syntaxError(err, location)
	}

	if ast.Prefix != Prefix {
		return nil, &SyntaxError{
			Msg:  fmt.Sprintf("annotation must use the '%s::' prefix, got '%s::'", Prefix, ast.Prefix),
			Loc:  location,
			Hint: "Use format: //autoval::<kind> [-Param=value]",
		}
	}

	annotationType, err := ParseAnnotationType(ast.Kind)
	if err != nil {
		return nil, &SyntaxError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Use one of: value, compareby",
		}
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]string, len(ast.Params)),
		Location:   location,
		Raw:        strings.TrimSpace(comment),
	}

	for _, param := range ast.Params {
		if _, dup := parsed.Parameters[param.Name]; dup {
			return nil, &ValidationError{
				Parameter: param.Name,
				Expected:  "parameter given once",
				Actual:    "duplicate parameter",
				Loc:       location,
				Hint:      fmt.Sprintf("Remove the repeated -%s", param.Name),
			}
		}
		if param.Value == nil {
			parsed.Parameters[param.Name] = "true"
			continue
		}
		parsed.Parameters[param.Name] = *param.Value
	}

	if p.registry != nil {
		if err := p.ValidateAnnotation(parsed); err != nil {
			return nil, err
		}
	}

	return parsed, nil
}

func (p *parser) ValidateAnnotation(annotation *ParsedAnnotation) error {
	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return &SchemaError{
			Msg:  err.Error(),
			Loc:  annotation.Location,
			Hint: "Register the annotation schema before parsing",
		}
	}
	return p.validator.Validate(annotation, schema)
}

func (p *parser) syntaxError(err error, location SourceLocation) error {
	loc := location
	var perr participle.Error
	if errors.As(err, &perr) {
		// participle columns are relative to the text after the slashes
		loc.Column = location.Column + perr.Position().Column + 1
		return &SyntaxError{
			Msg:  perr.Message(),
			Loc:  loc,
			Hint: "Use format: //autoval::<kind> [-Param=value]",
		}
	}
	return &SyntaxError{Msg: err.Error(), Loc: loc, Hint: "Use format: //autoval::<kind> [-Param=value]"}
}
