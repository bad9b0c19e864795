package models

// PackageMetadata represents all value types found in a package
type PackageMetadata struct {
	PackageName string      // name of the Go package
	PackagePath string      // import path of the package
	Dir         string      // file system path to the package
	ValueTypes  []ValueType // annotated value types in source order
}
