package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/errors"
)

// DiagnosticReporter prints value type diagnostics and run failures
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterWithWriter(verbose, os.Stderr)
}

// NewDiagnosticReporterWithWriter creates a reporter writing to out
func NewDiagnosticReporterWithWriter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportDiagnostics prints diagnostics the way the Go toolchain prints
// compile errors, one per line. Notes are printed in verbose mode only.
func (r *DiagnosticReporter) ReportDiagnostics(diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		if d.Severity == diag.SeverityNote && !r.verbose {
			continue
		}

		if d.Pos.IsValid() {
			fmt.Fprintf(r.out, "%s: ", d.Pos)
		}
		severityColor(d.Severity).Fprint(r.out, d.Severity.String())
		fmt.Fprintf(r.out, ": %s", d.Message)
		if r.verbose {
			fmt.Fprintf(r.out, " [%s %s]", d.Code, d.Subject)
		}
		fmt.Fprintln(r.out)
	}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	color.New(color.FgYellow, color.Bold).Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints a failed run with the context and suggestions the
// error carries
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var autovalErr errors.AutovalError
	if stderrors.As(err, &autovalErr) {
		r.reportAutovalError(autovalErr)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && multi.HasCode(errors.LoadErrorCode) {
		r.printFailedPackages(multi.GetByCode(errors.LoadErrorCode))
	}

	if r.verbose {
		r.printErrorChain(err)
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportAutovalError(err errors.AutovalError) {
	title := errorTitle(err.ErrorCode())
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}
	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
}

// printFailedPackages lists the import paths of packages that did not load
func (r *DiagnosticReporter) printFailedPackages(loadErrs []errors.AutovalError) {
	fmt.Fprintf(r.out, "Failed Packages:\n")
	for _, err := range loadErrs {
		var loadErr *errors.LoadError
		if stderrors.As(err, &loadErr) {
			fmt.Fprintf(r.out, "   - %s\n", loadErr.Package)
		}
	}
	fmt.Fprintf(r.out, "\n")
}

func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.ValidationErrorCode:
		return "Validation Error"
	case errors.LoadErrorCode:
		return "Package Load Error"
	case errors.GenerationErrorCode:
		return "Code Generation Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	default:
		return "Unknown Error"
	}
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey turns snake_case keys into Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
		level++
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case diag.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
