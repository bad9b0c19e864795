package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/utils"
)

// DirectoryScanner finds the package directories a run covers
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanDirectories returns the absolute directories holding Go sources.
// A pattern ending in "/..." covers the directory and everything below it;
// any other path covers only itself.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	return s.scan(patterns, utils.DefaultGoFileFilter())
}

// ScanGeneratedDirectories returns the absolute directories holding
// generated files
func (s *DirectoryScanner) ScanGeneratedDirectories(patterns []string) ([]string, error) {
	return s.scan(patterns, utils.GeneratedFileFilter())
}

func (s *DirectoryScanner) scan(patterns []string, filter utils.FileFilter) ([]string, error) {
	var dirs []string
	visited := make(map[string]bool)

	for _, pattern := range patterns {
		base, recursive := splitPattern(pattern)
		absDir, err := filepath.Abs(base)
		if err != nil {
			return nil, errors.WrapWithOperation("resolve", base, err)
		}

		found, err := s.fileProcessor.ScanDirectories([]string{absDir}, recursive, filter)
		if err != nil {
			return nil, err
		}
		for _, dir := range found {
			if !visited[dir] {
				visited[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}

	return dirs, nil
}

// splitPattern strips a trailing "/..." and reports whether it was there
func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, "/...") {
		base := strings.TrimSuffix(pattern, "/...")
		if base == "" {
			base = "/"
		}
		return base, true
	}
	return pattern, false
}
