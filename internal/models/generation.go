package models

// GeneratedFile is one file produced for a package
type GeneratedFile struct {
	Path    string // absolute path the file is written to
	Content []byte // formatted Go source
}

// GeneratedPackage collects the files produced for a package
type GeneratedPackage struct {
	PackagePath string
	Dir         string
	Files       []GeneratedFile
	Skipped     []string // value types left without output because of diagnostics
}
