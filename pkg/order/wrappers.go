package order

import (
	"cmp"
	"time"
)

// Float64 is a float64 that implements Comparable. NaN sorts before every
// other value, matching cmp.Compare.
type Float64 float64

// CompareTo implements Comparable.
func (f Float64) CompareTo(other Float64) int {
	return cmp.Compare(f, other)
}

// Int is an int that implements Comparable.
type Int int

// CompareTo implements Comparable.
func (i Int) CompareTo(other Int) int {
	return cmp.Compare(i, other)
}

// Int64 is an int64 that implements Comparable.
type Int64 int64

// CompareTo implements Comparable.
func (i Int64) CompareTo(other Int64) int {
	return cmp.Compare(i, other)
}

// String is a string that implements Comparable using byte-wise ordering.
type String string

// CompareTo implements Comparable.
func (s String) CompareTo(other String) int {
	return cmp.Compare(s, other)
}

// Time wraps time.Time so instants can drive ordering.
type Time struct {
	time.Time
}

// CompareTo implements Comparable.
func (t Time) CompareTo(other Time) int {
	return t.Time.Compare(other.Time)
}

var (
	_ Comparable[Float64] = Float64(0)
	_ Comparable[Int]     = Int(0)
	_ Comparable[Int64]   = Int64(0)
	_ Comparable[String]  = String("")
	_ Comparable[Time]    = Time{}
)
