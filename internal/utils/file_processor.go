package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/autoval/internal/errors"
)

// GeneratedFilePrefix starts the name of every generated file
const GeneratedFilePrefix = "autogen_"

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// DefaultGoFileFilter matches .go files, excluding tests and generated files
func DefaultGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasPrefix(name, GeneratedFilePrefix)
	}
}

// GeneratedFileFilter matches generated .go files
func GeneratedFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasPrefix(name, GeneratedFilePrefix) && strings.HasSuffix(name, ".go")
	}
}

// DefaultDirectoryFilter skips directories that never hold package sources
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles returns every directory below rootDirs that
// holds Go sources, each once, in walk order
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string, recursive bool) ([]string, error) {
	return fp.ScanDirectories(rootDirs, recursive, DefaultGoFileFilter())
}

// ScanDirectories returns every directory below rootDirs holding a file
// that matches filter
func (fp *FileProcessor) ScanDirectories(rootDirs []string, recursive bool, filter FileFilter) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		dirs, err := fp.scanDirectory(rootDir, recursive, filter, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, dirs...)
	}

	return packageDirs, nil
}

func (fp *FileProcessor) scanDirectory(dir string, recursive bool, filter FileFilter, visited map[string]bool) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapWithOperation("resolve", dir, err)
	}
	if visited[absDir] {
		return nil, nil
	}
	visited[absDir] = true

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", absDir, err)
	}

	var packageDirs []string
	if fp.matchAny(absDir, entries, filter) {
		packageDirs = append(packageDirs, absDir)
	}
	if !recursive {
		return packageDirs, nil
	}

	directoryFilter := DefaultDirectoryFilter()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entryPath := filepath.Join(absDir, entry.Name())
		if !directoryFilter(entryPath, entry) {
			continue
		}

		subDirs, err := fp.scanDirectory(entryPath, true, filter, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, subDirs...)
	}

	return packageDirs, nil
}

// HasGoFiles checks if a directory contains Go sources other than tests
// and generated files
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return fp.matchAny(dir, entries, DefaultGoFileFilter()), nil
}

func (fp *FileProcessor) matchAny(dir string, entries []os.DirEntry, filter FileFilter) bool {
	for _, entry := range entries {
		if filter(filepath.Join(dir, entry.Name()), entry) {
			return true
		}
	}
	return false
}

// CleanDirectories removes generated files from the given directories and
// returns the removed paths sorted
func (fp *FileProcessor) CleanDirectories(dirs []string) ([]string, error) {
	var removedFiles []string
	filter := GeneratedFileFilter()

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removedFiles, errors.WrapFileSystemError("read directory", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if !filter(path, entry) {
				continue
			}
			if err := os.Remove(path); err != nil {
				return removedFiles, errors.WrapFileSystemError("remove", path, err)
			}
			removedFiles = append(removedFiles, path)
		}
	}

	sort.Strings(removedFiles)
	return removedFiles, nil
}
