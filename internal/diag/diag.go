// Package diag carries per-candidate diagnostics from the validation and
// generation passes to whoever drives them. A diagnostic never aborts a
// batch: the candidate it names is skipped and the remaining ones proceed.
package diag

import (
	"fmt"
	"go/token"
	"strings"
)

// Severity of a diagnostic
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Code identifies the kind of problem a diagnostic reports
type Code int

const (
	CodeUnknown Code = iota
	CodeMissingDesignation
	CodeAmbiguousDesignation
	CodeNotOrderable
	CodeInvalidAnnotation
	CodeMalformedValueType
	CodeUnimplementedMethod
	CodeExtensionConflict
	CodeTypeCheck
)

// String returns the string representation of the code
func (c Code) String() string {
	switch c {
	case CodeMissingDesignation:
		return "MissingDesignation"
	case CodeAmbiguousDesignation:
		return "AmbiguousDesignation"
	case CodeNotOrderable:
		return "NotOrderable"
	case CodeInvalidAnnotation:
		return "InvalidAnnotation"
	case CodeMalformedValueType:
		return "MalformedValueType"
	case CodeUnimplementedMethod:
		return "UnimplementedMethod"
	case CodeExtensionConflict:
		return "ExtensionConflict"
	case CodeTypeCheck:
		return "TypeCheck"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single message about a candidate value type
type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      token.Position
	Subject  string // value type the message is about, e.g. "shop.Price"
	Message  string
}

// String formats the diagnostic the way the Go toolchain formats errors
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Errorf builds an error-severity diagnostic
func Errorf(code Code, pos token.Position, subject, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Pos:      pos,
		Subject:  subject,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Warnf builds a warning-severity diagnostic
func Warnf(code Code, pos token.Position, subject, format string, args ...interface{}) Diagnostic {
	d := Errorf(code, pos, subject, format, args...)
	d.Severity = SeverityWarning
	return d
}

// Sink receives diagnostics
type Sink interface {
	Report(d Diagnostic)
}

// Collector is a Sink that keeps diagnostics in report order. It is not safe
// for concurrent use; the generator keeps one per package.
type Collector struct {
	items []Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements Sink
func (c *Collector) Report(d Diagnostic) {
	c.items = append(c.items, d)
}

// All returns the collected diagnostics
func (c *Collector) All() []Diagnostic {
	return c.items
}

// Len returns the number of collected diagnostics
func (c *Collector) Len() int {
	return len(c.items)
}

// ErrorCount returns the number of error-severity diagnostics
func (c *Collector) ErrorCount() int {
	n := 0
	for _, d := range c.items {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error-severity diagnostic was collected
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// ByCode returns the diagnostics carrying the given code
func (c *Collector) ByCode(code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Discard is a Sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}
