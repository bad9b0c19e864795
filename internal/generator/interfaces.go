package generator

import (
	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// CodeGenerator renders the implementation of every value type in a package
type CodeGenerator interface {
	GeneratePackage(metadata *models.PackageMetadata, u *typesys.Universe, sink diag.Sink) (*models.GeneratedPackage, error)
}

// FileWriter writes generated packages to disk
type FileWriter interface {
	WritePackage(pkg *models.GeneratedPackage) (WriteStats, error)
}
