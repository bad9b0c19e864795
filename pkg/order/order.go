// Package order defines the ordering capability that autoval value types opt
// into, along with orderable wrappers over Go's builtin types.
//
// A value type declares that it can be ordered against itself by embedding
// Comparable parameterized with its own name:
//
//	//autoval::value
//	type Price interface {
//		order.Comparable[Price]
//
//		//autoval::compareby
//		Value() order.Float64
//		Tax() order.Float64
//	}
//
// The generator then synthesizes CompareTo by delegating to the CompareTo of
// the accessor marked with //autoval::compareby.
package order

// Comparable is implemented by values that can be ordered against other values
// of type T. CompareTo returns a negative number, zero or a positive number
// when the receiver sorts before, together with or after other.
type Comparable[T any] interface {
	CompareTo(other T) int
}

// Compare orders a against b using a's CompareTo.
func Compare[T Comparable[T]](a, b T) int {
	return a.CompareTo(b)
}

// Less reports whether a sorts strictly before b.
func Less[T Comparable[T]](a, b T) bool {
	return a.CompareTo(b) < 0
}
