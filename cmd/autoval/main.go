package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/toyz/autoval/internal/cli"
	"github.com/toyz/autoval/internal/registry"
	"github.com/toyz/autoval/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("autoval", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		moduleFlag    = flags.String("module", "", "Module path shown for scanned packages (defaults to go.mod module)")
		canonicalFlag = flags.String("canonical", "", "Qualified name of the self-ordering interface (default "+cli.DefaultConfig().Canonical+")")
		outputFlag    = flags.String("output", "", "Name of the generated host file (default "+cli.DefaultConfig().Output+")")
		configFlag    = flags.String("config", "", "YAML configuration file (defaults to "+cli.DefaultConfigFile+" if present)")
		workersFlag   = flags.Int("workers", 0, "Packages generated at once (0 means one per CPU)")
		verboseFlag   = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag     = flags.Bool("quiet", false, "Only show errors and final results")
		dryRunFlag    = flags.Bool("dry-run", false, "Report the files that would change without writing them")
		cleanFlag     = flags.Bool("clean", false, "Delete all autogen_*.go files from the specified directories")
		helpFlag      = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: autoval [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Autoval Value Type Generator\n")
		fmt.Fprintf(stderr, "Scans directories for interfaces annotated with //autoval::value and generates their implementations.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories to scan for value types\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  autoval ./...                                   # Generate everything recursively\n")
		fmt.Fprintf(stderr, "  autoval -canonical example.com/cmp.Ordered ./... # Use another ordering interface\n")
		fmt.Fprintf(stderr, "  autoval -dry-run -verbose ./internal/...        # Show what would change\n")
		fmt.Fprintf(stderr, "  autoval -clean ./...                            # Delete all generated files\n")
	}

	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *helpFlag {
		flags.Usage()
		return 0
	}

	patterns := flags.Args()
	if len(patterns) == 0 {
		fmt.Fprintf(stderr, "Error: at least one directory path is required\n\n")
		flags.Usage()
		return 2
	}

	level := utils.DiagnosticInfo
	switch {
	case *quietFlag:
		level = utils.DiagnosticError
	case *verboseFlag:
		level = utils.DiagnosticVerbose
	}
	diagnostics := newDiagnostics(level, stdout, stderr)
	reporter := cli.NewDiagnosticReporterWithWriter(*verboseFlag, stderr)

	diagnostics.Header("value type generator")

	if *cleanFlag {
		removed, err := cli.NewCleaner().CleanGeneratedFiles(patterns)
		if err != nil {
			reporter.ReportError(err)
			return 1
		}
		for _, path := range removed {
			diagnostics.List("removed %s", path)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return 0
	}

	configPath, required := cli.DefaultConfigFile, false
	if *configFlag != "" {
		configPath, required = *configFlag, true
	}
	config, err := cli.LoadConfigFile(configPath, required)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	config.Directories = patterns
	config.Verbose = *verboseFlag
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "module":
			config.ModuleName = *moduleFlag
		case "canonical":
			config.Canonical = *canonicalFlag
		case "output":
			config.Output = *outputFlag
		case "workers":
			config.Workers = *workersFlag
		case "dry-run":
			config.DryRun = *dryRunFlag
		}
	})

	if config.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(patterns, ", "))
		diagnostics.List("Ordering interface: %s", config.Canonical)
		diagnostics.List("Output file: %s", config.Output)
		diagnostics.List("Workers: %d", config.WorkerCount())
		if config.ModuleName != "" {
			diagnostics.List("Custom module: %s", config.ModuleName)
		}
		if config.DryRun {
			diagnostics.List("Dry run: enabled")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	generator := cli.NewGeneratorWithRegistry(registry.NewDefaultRegistry(), reporter, diagnostics)
	diagnostics.Subsection("Code Generation")
	err = generator.Run(ctx, config)

	summary := generator.GetSummary()
	if err != nil && !stderrors.Is(err, cli.ErrDiagnostics) {
		reporter.ReportError(err)
		return 1
	}

	diagnostics.Summary("Generation Complete!", summary.Stats())
	if config.Verbose && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	if err != nil {
		diagnostics.Error("%d errors in value types, affected types were not generated", summary.Errors)
		return 1
	}
	if config.DryRun {
		diagnostics.Success("Dry run finished, %d files would be written", len(summary.GeneratedFiles))
		return 0
	}
	diagnostics.Success("Value types are up to date")
	return 0
}

// newDiagnostics colours output only when it goes to the process streams
func newDiagnostics(level utils.DiagnosticLevel, stdout, stderr io.Writer) *utils.DiagnosticSystem {
	if stdout == os.Stdout && stderr == os.Stderr {
		return utils.NewDiagnosticSystem(level)
	}
	return utils.NewDiagnosticSystemWithWriters(level, stdout, stderr)
}
