package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/generator"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/parser"
	"github.com/toyz/autoval/internal/registry"
	"github.com/toyz/autoval/internal/typesys"
	"github.com/toyz/autoval/internal/utils"
)

// ErrDiagnostics is returned when a run reported error diagnostics. The
// diagnostics themselves have already been printed.
var ErrDiagnostics = stderrors.New("value types have errors")

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	ValueTypesFound   int
	ValueTypesSkipped int
	Errors            int
	Warnings          int
	GeneratedFiles    []string // files written, or that would be written in a dry run
	RemovedFiles      []string // stale generated files
}

// packageResult is what one worker produced for one package
type packageResult struct {
	pkg         *typesys.Package
	diagnostics *diag.Collector
	metadata    *models.PackageMetadata
	skipped     []string
	stats       generator.WriteStats
}

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         parser.ValueTypeParser
	extensions     registry.ExtensionRegistry
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a CLI generator running the built-in extensions
func NewGenerator(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	return NewGeneratorWithRegistry(registry.NewDefaultRegistry(), NewDiagnosticReporter(verbose), diagnostics)
}

// NewGeneratorWithRegistry creates a CLI generator running the extensions
// of reg
func NewGeneratorWithRegistry(reg registry.ExtensionRegistry, reporter *DiagnosticReporter, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParser(),
		extensions:     reg,
		reporter:       reporter,
		diagnostics:    diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. Diagnostics are printed
// as each module finishes; ErrDiagnostics is returned when any of them is
// an error.
func (g *Generator) Run(ctx context.Context, config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	if err := config.Validate(); err != nil {
		return err
	}
	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Canonical ordering interface: %s", config.Canonical)

	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	if len(packageDirs) == 0 {
		return errors.New(errors.ValidationErrorCode, "no Go packages found in specified directories").
			WithContext("directories", config.Directories).
			WithSuggestion("Use a pattern like './...' to scan subdirectories")
	}

	modules, err := g.moduleResolver.GroupByModule(packageDirs)
	if err != nil {
		return err
	}

	for _, module := range modules {
		if err := g.runModule(ctx, config, module); err != nil {
			return err
		}
	}

	g.diagnostics.Verbose("Generation finished in %s", time.Since(startTime).Round(time.Millisecond))
	if g.summary.Errors > 0 {
		return ErrDiagnostics
	}
	return nil
}

// runModule loads every scanned package of a module at once and generates
// them concurrently. Results are reported in load order.
func (g *Generator) runModule(ctx context.Context, config Config, module *Module) error {
	moduleName := module.Path
	if config.ModuleName != "" {
		moduleName = config.ModuleName
	}
	g.diagnostics.Info("Loading %d packages of %s", len(module.Dirs), moduleName)
	g.diagnostics.Indent()
	for _, dir := range module.Dirs {
		if importPath, err := g.moduleResolver.BuildPackagePath(moduleName, module.Dir, dir); err == nil {
			g.diagnostics.Debug("%s", importPath)
		}
	}
	g.diagnostics.Unindent()

	loaded, err := parser.NewLoader(module.Dir).Load(ctx, module.Dirs...)
	if err != nil {
		return err
	}
	for _, warning := range loaded.Warnings {
		g.diagnostics.Verbose("type check: %s", warning)
	}

	u, err := typesys.NewUniverse(config.Canonical, loaded.All...)
	if err != nil {
		return errors.WrapConfigurationError("canonical", "resolve", err)
	}
	if u.Canonical() == nil {
		g.reporter.ReportWarning(fmt.Sprintf("%s is not imported by any package of %s, no value type can be ordered", config.Canonical, moduleName))
	}

	codeGen := generator.NewGeneratorWithRegistry(g.extensions, config.Output)
	writer := generator.NewWriter(config.DryRun)

	results := make([]*packageResult, len(loaded.Roots))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(config.WorkerCount())

	for i, pkg := range loaded.Roots {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := g.generatePackage(pkg, u, codeGen, writer)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		g.record(result)
	}
	return nil
}

// generatePackage parses, generates and writes one package. Its
// diagnostics go to a collector of its own.
func (g *Generator) generatePackage(pkg *typesys.Package, u *typesys.Universe, codeGen generator.CodeGenerator, writer generator.FileWriter) (*packageResult, error) {
	sink := diag.NewCollector()
	metadata := g.parser.ParsePackage(pkg, sink)

	out, err := codeGen.GeneratePackage(metadata, u, sink)
	if err != nil {
		return nil, err
	}
	result := &packageResult{
		pkg:         pkg,
		diagnostics: sink,
		metadata:    metadata,
		skipped:     out.Skipped,
	}
	if out.Dir == "" {
		return result, nil
	}

	result.stats, err = writer.WritePackage(out)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// record prints the outcome of one package and adds it to the summary
func (g *Generator) record(result *packageResult) {
	g.summary.PackagesProcessed++
	g.summary.ValueTypesFound += len(result.metadata.ValueTypes)
	g.summary.ValueTypesSkipped += len(result.skipped)
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, result.stats.Written...)
	g.summary.RemovedFiles = append(g.summary.RemovedFiles, result.stats.Removed...)

	for _, d := range result.diagnostics.All() {
		switch d.Severity {
		case diag.SeverityError:
			g.summary.Errors++
		case diag.SeverityWarning:
			g.summary.Warnings++
		}
	}
	g.reporter.ReportDiagnostics(result.diagnostics.All())

	if len(result.metadata.ValueTypes) == 0 && len(result.stats.Removed) == 0 {
		return
	}
	g.diagnostics.PhaseItem("%s: %d value types", result.pkg.Path, len(result.metadata.ValueTypes))
	g.diagnostics.Indent()
	for _, path := range result.stats.Written {
		g.diagnostics.List("wrote %s", filepath.Base(path))
	}
	for _, path := range result.stats.Removed {
		g.diagnostics.List("removed %s", filepath.Base(path))
	}
	g.diagnostics.Unindent()
}

// Stats returns the statistics printed at the end of a run
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Packages processed":  s.PackagesProcessed,
		"Value types found":   s.ValueTypesFound,
		"Value types skipped": s.ValueTypesSkipped,
		"Files written":       len(s.GeneratedFiles),
		"Files removed":       len(s.RemovedFiles),
		"Errors":              s.Errors,
		"Warnings":            s.Warnings,
	}
}

func (s GenerationSummary) String() string {
	return fmt.Sprintf("%d packages, %d value types, %d files written, %d errors",
		s.PackagesProcessed, s.ValueTypesFound, len(s.GeneratedFiles), s.Errors)
}
