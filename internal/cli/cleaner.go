package cli

import (
	"github.com/toyz/autoval/internal/utils"
)

// Cleaner removes generated files
type Cleaner struct {
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner:       NewDirectoryScanner(),
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every autogen_*.go file from the directories
// the patterns cover and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	dirs, err := c.scanner.ScanGeneratedDirectories(patterns)
	if err != nil {
		return nil, err
	}

	return c.fileProcessor.CleanDirectories(dirs)
}
