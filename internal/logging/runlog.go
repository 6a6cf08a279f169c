package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"musiclink/internal/config"
)

// RunLog is the JSON log file kept for a single run.
type RunLog struct {
	Path string
	file *os.File
}

// Close flushes and closes the log file. It is safe on a nil RunLog.
func (l *RunLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// RunLogName returns the file name used for the run log of runID started at
// the given time.
func RunLogName(startedAt time.Time, runID string) string {
	id := strings.ReplaceAll(runID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "run"
	}
	return fmt.Sprintf("musiclink-%s-%s.log", startedAt.UTC().Format("20060102T150405Z"), id)
}

// NewRunLogger builds the logger for a link run. Console records follow the
// configured format and level. When run logs are enabled every record down
// to debug level is also written as JSON to a file under cfg.LogDir(), and
// run logs past the retention window are pruned. The returned RunLog is nil
// when no file was opened.
func NewRunLogger(cfg *config.Config, console io.Writer, runID string, startedAt time.Time) (*slog.Logger, *RunLog, error) {
	if cfg == nil {
		logger, err := NewFromConfig(nil, console, runID)
		return logger, nil, err
	}
	consoleHandler, err := newHandler(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: console,
	})
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Logging.RunLogs {
		return slog.New(withRunID(consoleHandler, runID)), nil, nil
	}

	dir := cfg.LogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, RunLogName(startedAt, runID))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}
	fileHandler := newJSONHandler(file, slog.LevelDebug, false)

	logger := slog.New(withRunID(newFanoutHandler(consoleHandler, fileHandler), runID))
	PruneRunLogs(logger, dir, cfg.Logging.RetentionDays, path, startedAt)
	return logger, &RunLog{Path: path, file: file}, nil
}
