package parser

import (
	"errors"
	"go/token"
	"strings"

	"github.com/toyz/autoval/internal/annotations"
	"github.com/toyz/autoval/internal/diag"
)

// reportAnnotationError turns an annotation parse failure into one
// diagnostic per underlying problem, suggestion appended
func reportAnnotationError(sink diag.Sink, err error, pos token.Position, subject string) {
	var multi *annotations.MultipleAnnotationErrors
	if errors.As(err, &multi) {
		for _, e := range multi.Errors {
			reportAnnotationError(sink, e, pos, subject)
		}
		return
	}

	var aerr annotations.AnnotationError
	if !errors.As(err, &aerr) {
		sink.Report(diag.Errorf(diag.CodeInvalidAnnotation, pos, subject, "%s", err.Error()))
		return
	}

	if loc := aerr.Location(); loc.File != "" {
		pos = toPosition(loc)
	}
	sink.Report(diag.Errorf(diag.CodeInvalidAnnotation, pos, subject, "%s", annotationMessage(aerr)))
}

// annotationMessage drops the location prefix the annotation error carries,
// since the diagnostic has its own
func annotationMessage(err annotations.AnnotationError) string {
	msg := err.Error()
	if prefix := err.Location().String() + ": "; strings.HasPrefix(msg, prefix) {
		msg = msg[len(prefix):]
	}
	return strings.TrimSuffix(strings.TrimSpace(msg), ".")
}
