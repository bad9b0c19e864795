package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/parser"
)

// WriteStats describes what WritePackage changed on disk
type WriteStats struct {
	Written   []string // files created or rewritten
	Unchanged []string // files whose content already matched
	Removed   []string // generated files no longer produced
}

// Writer writes generated packages and removes the generated files they
// no longer contain
type Writer struct {
	dryRun bool
}

// NewWriter creates a writer. A dry-run writer reports what it would do
// without touching the file system.
func NewWriter(dryRun bool) *Writer {
	return &Writer{dryRun: dryRun}
}

// WritePackage implements FileWriter
func (w *Writer) WritePackage(pkg *models.GeneratedPackage) (WriteStats, error) {
	var stats WriteStats
	keep := make(map[string]bool, len(pkg.Files))

	for _, file := range pkg.Files {
		keep[filepath.Clean(file.Path)] = true

		existing, err := os.ReadFile(file.Path)
		if err == nil && bytes.Equal(existing, file.Content) {
			stats.Unchanged = append(stats.Unchanged, file.Path)
			continue
		}
		if err != nil && !os.IsNotExist(err) {
			return stats, errors.WrapFileSystemError("read", file.Path, err)
		}

		if !w.dryRun {
			if err := os.WriteFile(file.Path, file.Content, 0o644); err != nil {
				return stats, errors.WrapFileSystemError("write", file.Path, err)
			}
		}
		stats.Written = append(stats.Written, file.Path)
	}

	stale, err := filepath.Glob(filepath.Join(pkg.Dir, parser.GeneratedFilePattern))
	if err != nil {
		return stats, errors.WrapFileSystemError("list", pkg.Dir, err)
	}
	sort.Strings(stale)
	for _, path := range stale {
		if keep[filepath.Clean(path)] {
			continue
		}
		if !w.dryRun {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return stats, errors.WrapFileSystemError("remove", path, err)
			}
		}
		stats.Removed = append(stats.Removed, path)
	}

	return stats, nil
}

var _ FileWriter = (*Writer)(nil)
