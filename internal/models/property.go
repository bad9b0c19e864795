package models

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/autoval/internal/annotations"
)

// Property is one accessor of a value type. It is built by the parser and
// never mutated afterwards.
type Property struct {
	MethodName string                // accessor name, unique within the value type
	HumanName  string                // field name derived from the accessor
	Type       types.Type            // accessor result type
	TypeString string                // Type relative to the declaring package
	Markers    annotations.MarkerSet // capability tags from method annotations
	Location   token.Position        // accessor declaration
}

// HasMarker reports whether the property carries m
func (p Property) HasMarker(m annotations.Marker) bool {
	return p.Markers.Has(m)
}

// HumanNames derives field names for a set of accessors. Get and Is
// prefixes are stripped only when every accessor carries one. The result
// never collides with a Go keyword.
func HumanNames(methods []string) []string {
	strip := len(methods) > 0
	for _, m := range methods {
		if prefixLen(m) == 0 {
			strip = false
			break
		}
	}

	out := make([]string, len(methods))
	for i, m := range methods {
		name := m
		if strip {
			name = m[prefixLen(m):]
		}
		out[i] = safeIdent(lowerFirst(name))
	}
	return out
}

// prefixLen returns the length of a Get or Is prefix followed by an
// upper-case rune, or 0.
func prefixLen(method string) int {
	for _, prefix := range []string{"Get", "Is"} {
		if !strings.HasPrefix(method, prefix) || len(method) == len(prefix) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(method[len(prefix):])
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			return len(prefix)
		}
	}
	return 0
}

// lowerFirst lower-cases the leading upper-case run, keeping the last
// rune of a run that starts a new word: ID becomes id, URLPath urlPath.
func lowerFirst(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func safeIdent(s string) string {
	if token.IsKeyword(s) {
		return s + "_"
	}
	return s
}
