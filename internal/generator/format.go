package generator

import (
	"golang.org/x/tools/imports"

	"github.com/toyz/autoval/internal/errors"
)

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// formatSource gofmts generated source. path only names the file in
// errors; nothing is read from disk.
func formatSource(path string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(path, src, formatOptions)
	if err != nil {
		return nil, errors.WrapGenerateError("format", path, err).
			WithStage("format")
	}
	return formatted, nil
}
