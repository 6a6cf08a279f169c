package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const runLogPattern = "musiclink-*.log"

// PruneRunLogs removes run log files in dir whose modification time is more
// than retentionDays before now. The file at keep is never removed. A
// retentionDays value of 0 disables pruning. It returns the number of files
// removed.
func PruneRunLogs(logger *slog.Logger, dir string, retentionDays int, keep string, now time.Time) int {
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	if logger == nil {
		logger = NewNop()
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	if keep != "" {
		if abs, err := filepath.Abs(keep); err == nil {
			keep = abs
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("log retention skipped", String(FieldPath, dir), Error(err))
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(runLogPattern, entry.Name()); !matched {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(fullPath); err == nil {
			fullPath = abs
		}
		if fullPath == keep {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			logger.Warn("could not remove old run log", String(FieldPath, fullPath), Error(err))
			continue
		}
		removed++
		logger.Debug("old run log removed", String(FieldPath, fullPath))
	}
	return removed
}
