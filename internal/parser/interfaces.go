package parser

import (
	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/typesys"
)

// ValueTypeParser extracts annotated value types from a loaded package.
// Problems with individual declarations are reported to the sink; the
// remaining declarations are still returned.
type ValueTypeParser interface {
	ParsePackage(pkg *typesys.Package, sink diag.Sink) *models.PackageMetadata
}
