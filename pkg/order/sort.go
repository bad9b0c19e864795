package order

import "slices"

// Sort sorts s in ascending order.
func Sort[T Comparable[T]](s []T) {
	slices.SortFunc(s, Compare[T])
}

// SortStable sorts s in ascending order, keeping equal elements in their
// original order.
func SortStable[T Comparable[T]](s []T) {
	slices.SortStableFunc(s, Compare[T])
}

// IsSorted reports whether s is in ascending order.
func IsSorted[T Comparable[T]](s []T) bool {
	return slices.IsSortedFunc(s, Compare[T])
}

// Min returns the smallest element of s. The second result is false when s
// is empty.
func Min[T Comparable[T]](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return slices.MinFunc(s, Compare[T]), true
}

// Max returns the largest element of s. The second result is false when s
// is empty.
func Max[T Comparable[T]](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return slices.MaxFunc(s, Compare[T]), true
}
