package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_FileValidation(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "go.mod")
	if err := os.WriteFile(path, []byte("module example.com/a\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cache := NewCache[string, string]()
	if err := cache.SetWithFileInfo(path, "example.com/a", path); err != nil {
		t.Fatalf("SetWithFileInfo failed: %v", err)
	}

	value, exists := cache.GetWithFileValidation(path, path)
	if !exists || value != "example.com/a" {
		t.Errorf("expected cached value, got %q (exists=%v)", value, exists)
	}

	later := time.Now().Add(time.Hour)
	if err := os.WriteFile(path, []byte("module example.com/bb\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test file: %v", err)
	}
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Failed to touch test file: %v", err)
	}

	if _, exists := cache.GetWithFileValidation(path, path); exists {
		t.Error("expected modified file to invalidate the cache entry")
	}
	if cache.Size() != 0 {
		t.Errorf("expected invalidated entry to be evicted, size is %d", cache.Size())
	}
}

func TestCache_MissingFile(t *testing.T) {
	cache := NewCache[string, int]()
	if err := cache.SetWithFileInfo("k", 1, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, exists := cache.GetWithFileValidation("k", "missing"); exists {
		t.Error("expected no entry")
	}
}
