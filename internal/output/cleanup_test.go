package output

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestCleanOldArtifacts removes stale files and keeps fresh ones
func TestCleanOldArtifacts(t *testing.T) {
	dir := t.TempDir()
	logger := log.New(io.Discard, "", 0)

	oldFile := filepath.Join(dir, "old.png")
	if err := os.WriteFile(oldFile, []byte("png"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatalf("failed to age file: %v", err)
	}

	freshFile := filepath.Join(dir, "fresh.png")
	if err := os.WriteFile(freshFile, []byte("png"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	cleaned, err := CleanOldArtifacts(dir, 24*time.Hour, logger)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if cleaned != 1 {
		t.Errorf("expected 1 cleaned artifact, got %d", cleaned)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("stale artifact survived cleanup")
	}
	if _, err := os.Stat(freshFile); err != nil {
		t.Error("fresh artifact removed by cleanup")
	}
	if _, err := os.Stat(filepath.Join(dir, "sub")); err != nil {
		t.Error("subdirectory removed by cleanup")
	}
}

// TestCleanOldArtifactsMissingDir reports the error
func TestCleanOldArtifactsMissingDir(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	if _, err := CleanOldArtifacts(filepath.Join(t.TempDir(), "nope"), time.Hour, logger); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
