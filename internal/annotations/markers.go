package annotations

import "strings"

// Marker is a capability tag carried by a value type accessor. Markers are
// derived from method-level annotations so that validation can test a closed
// set of tags instead of comparing annotation names.
type Marker int

const (
	// MarkerCompareBy designates the accessor that drives synthesized ordering.
	MarkerCompareBy Marker = iota
)

// AllMarkers lists every marker in declaration order
var AllMarkers = []Marker{MarkerCompareBy}

// String returns the string representation of the marker
func (m Marker) String() string {
	switch m {
	case MarkerCompareBy:
		return "compareby"
	default:
		return "unknown"
	}
}

// Annotation returns the annotation that spells the marker in source
func (m Marker) Annotation() string {
	return "//" + Prefix + "::" + m.String()
}

// MarkerFor maps a method-level annotation type to its marker
func MarkerFor(t AnnotationType) (Marker, bool) {
	switch t {
	case CompareByAnnotation:
		return MarkerCompareBy, true
	default:
		return 0, false
	}
}

// MarkerSet is an immutable set of markers
type MarkerSet uint32

// NewMarkerSet builds a set holding the given markers
func NewMarkerSet(markers ...Marker) MarkerSet {
	var s MarkerSet
	for _, m := range markers {
		s = s.With(m)
	}
	return s
}

// With returns a copy of the set that also holds m
func (s MarkerSet) With(m Marker) MarkerSet {
	return s | 1<<uint(m)
}

// Has reports whether m is in the set
func (s MarkerSet) Has(m Marker) bool {
	return s&(1<<uint(m)) != 0
}

// IsEmpty reports whether the set holds no markers
func (s MarkerSet) IsEmpty() bool {
	return s == 0
}

// Markers returns the members of the set in declaration order
func (s MarkerSet) Markers() []Marker {
	var out []Marker
	for _, m := range AllMarkers {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String returns the set as {a,b}
func (s MarkerSet) String() string {
	names := make([]string, 0, len(AllMarkers))
	for _, m := range s.Markers() {
		names = append(names, m.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
