package comparable

import (
	"go/token"
	"go/types"

	"github.com/toyz/autoval/internal/annotations"
	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// Result is the outcome of Validate. An invalid result always carries a
// diagnostic; a valid one carries the designated property.
type Result struct {
	Valid      bool
	Property   models.Property
	Diagnostic diag.Diagnostic
}

// Validate selects the property designated with //autoval::compareby and
// checks that its type is orderable. Only the property type's direct
// supertypes are inspected: a type that reaches the ordering interface
// through an intermediate interface is rejected.
func Validate(u *typesys.Universe, props []models.Property, self *types.Named) Result {
	subject := qualifiedName(self)

	designated, res, ok := designate(props, subject)
	if !ok {
		return res
	}

	if !orderable(u, designated.Type) {
		return invalid(diag.Errorf(diag.CodeNotOrderable, designated.Location, subject,
			"%s.%s does not implement %s", self.Obj().Name(), designated.MethodName, u.CanonicalName()))
	}

	return Result{Valid: true, Property: designated}
}

// designate enforces exactly one //autoval::compareby. A missing marker has
// no position; the caller attaches the value type's.
func designate(props []models.Property, subject string) (models.Property, Result, bool) {
	var marked []models.Property
	for _, p := range props {
		if p.HasMarker(annotations.MarkerCompareBy) {
			marked = append(marked, p)
		}
	}

	switch len(marked) {
	case 0:
		return models.Property{}, invalid(diag.Errorf(diag.CodeMissingDesignation, token.Position{}, subject,
			"missing %s on a comparable field of %s", annotations.MarkerCompareBy.Annotation(), subject)), false
	case 1:
		return marked[0], Result{}, true
	default:
		return models.Property{}, invalid(diag.Errorf(diag.CodeAmbiguousDesignation, marked[1].Location, subject,
			"only one %s is allowed in a type", annotations.MarkerCompareBy.Annotation())), false
	}
}

func orderable(u *typesys.Universe, t types.Type) bool {
	for _, st := range u.DirectSupertypes(t) {
		if u.IsCanonical(st) {
			return true
		}
	}
	return false
}

func invalid(d diag.Diagnostic) Result {
	return Result{Valid: false, Diagnostic: d}
}

func qualifiedName(named *types.Named) string {
	obj := named.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Name() + "." + obj.Name()
}
