package parser

const (
	// GeneratedFilePrefix starts the name of every file autoval writes
	GeneratedFilePrefix = "autogen_"

	// GeneratedFilePattern matches every file autoval writes
	GeneratedFilePattern = GeneratedFilePrefix + "*.go"

	// ConstructorParam overrides the generated constructor name
	ConstructorParam = "Constructor"
)
