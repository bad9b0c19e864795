package comparable

import (
	"go/types"

	"github.com/toyz/autoval/internal/typesys"
)

// Applicable reports whether candidate declares the self-ordering interface
// instantiated with candidate itself. Declaring it for another type, or
// for an interface candidate merely satisfies, does not count.
func Applicable(u *typesys.Universe, candidate *types.Named, declared []types.Type) bool {
	canonical := u.Canonical()
	if canonical == nil {
		return false
	}

	for _, iface := range declared {
		if !u.IsAssignable(u.Erasure(iface), canonical) {
			continue
		}
		args := u.TypeArgs(iface)
		if len(args) == 1 && u.SameType(args[0], candidate) {
			return true
		}
	}
	return false
}
