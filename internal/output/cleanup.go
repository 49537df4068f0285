// internal/output/cleanup.go
package output

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// CleanOldArtifacts removes files in dir whose modification time is older
// than retention. Subdirectories are left alone.
func CleanOldArtifacts(dir string, retention time.Duration, logger *log.Logger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Printf("artifact cleanup error: %v", err)
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	cleaned := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				logger.Printf("failed to remove artifact %s: %v", e.Name(), err)
			} else {
				cleaned++
			}
		}
	}

	if cleaned > 0 {
		logger.Printf("cleaned up %d old artifacts", cleaned)
	}
	return cleaned, nil
}
