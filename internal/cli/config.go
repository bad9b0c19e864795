package cli

import (
	"bytes"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/generator"
	"github.com/toyz/autoval/internal/typesys"
	"github.com/toyz/autoval/internal/utils"
)

// DefaultConfigFile is read from the working directory when -config is not given
const DefaultConfigFile = "autoval.yaml"

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for value types
	Directories []string `yaml:"-"`

	// ModuleName overrides the module path shown for scanned packages.
	// If empty, it is read from go.mod.
	ModuleName string `yaml:"module"`

	// Canonical is the qualified name of the self-ordering interface
	Canonical string `yaml:"canonical"`

	// Output is the file holding the host classes of a package
	Output string `yaml:"output"`

	// Workers bounds how many packages are generated at once; 0 means one
	// per CPU
	Workers int `yaml:"workers"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"-"`

	// DryRun reports what would be written without touching files
	DryRun bool `yaml:"dry_run"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Canonical: typesys.DefaultCanonical,
		Output:    generator.DefaultOutputFile,
	}
}

// LoadConfigFile reads a YAML configuration on top of the defaults.
// Unknown keys are rejected. A missing file is only an error when required
// is set.
func LoadConfigFile(path string, required bool) (Config, error) {
	config := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return config, nil
		}
		return config, errors.WrapConfigurationError(path, "read", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && err != io.EOF {
		return config, errors.WrapConfigurationError(path, "parse", err).
			WithSuggestion("Valid keys are module, canonical, output, workers and dry_run")
	}

	return config, config.Validate()
}

// Validate checks the configuration values
func (c Config) Validate() error {
	canonical := utils.NewValidatorChain(
		utils.NotEmpty("canonical"),
		utils.QualifiedTypeName("canonical"),
	)
	if err := canonical.Validate(c.Canonical); err != nil {
		return errors.WrapConfigurationError("canonical", "validate", err).
			WithSuggestion("Use the form import/path.Name, e.g. " + typesys.DefaultCanonical)
	}
	if _, _, err := typesys.SplitQualified(c.Canonical); err != nil {
		return errors.WrapConfigurationError("canonical", "validate", err)
	}

	if err := utils.GeneratedFileName("output").Validate(c.Output); err != nil {
		return errors.WrapConfigurationError("output", "validate", err).
			WithSuggestion("Generated files must match autogen_*.go so they can be found and cleaned")
	}

	if err := utils.NonNegative("workers")(c.Workers); err != nil {
		return errors.WrapConfigurationError("workers", "validate", err)
	}
	return nil
}

// WorkerCount returns the effective number of workers
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
