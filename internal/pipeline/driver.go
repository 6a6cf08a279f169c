package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"musiclink/internal/config"
	"musiclink/internal/discover"
	"musiclink/internal/ledger"
	"musiclink/internal/library"
	"musiclink/internal/linker"
	"musiclink/internal/logging"
	"musiclink/internal/tags"
)

// Recorder persists link outcomes. *ledger.Store satisfies it.
type Recorder interface {
	RecordLink(ctx context.Context, entry ledger.Entry) error
}

// Driver runs the discovery, probe, normalize and link pipeline.
type Driver struct {
	Config *config.Config
	Prober tags.Prober
	Linker *linker.Linker
	Logger *slog.Logger
	// Progress receives per-file progress. Nil prints progress lines to Out.
	Progress Reporter
	// Out receives progress lines when Progress is nil.
	Out io.Writer
	// Ledger, when set, records every placed or already present file under RunID.
	Ledger Recorder
	RunID  string
	// DryRun computes destinations without touching the destination tree.
	DryRun bool
}

// Run links every eligible file under src into dest. It returns the counters
// gathered so far together with any error that ended the run early.
func (d *Driver) Run(ctx context.Context, src, dest string) (Stats, error) {
	start := time.Now()
	var stats Stats

	if d.Config == nil || d.Prober == nil {
		return stats, errors.New("pipeline driver requires config and prober")
	}
	logger := logging.NewComponentLogger(d.Logger, "pipeline")
	lk := d.Linker
	if lk == nil {
		lk = linker.New(d.Config.Library.CrossDevice)
	}

	files, err := discover.Files(src, d.Config.ExtensionSet())
	if err != nil {
		stats.Elapsed = time.Since(start)
		return stats, err
	}
	stats.Found = len(files)
	logger.Info("discovered audio files",
		logging.Int("count", stats.Found),
		logging.String("source", src),
		logging.String(logging.FieldDest, dest),
	)

	progress := d.reporter()
	run := &runState{
		driver: d,
		logger: logger,
		linker: lk,
		src:    src,
		dest:   dest,
		stats:  &stats,
	}
	if d.DryRun {
		run.planned = make(map[string]struct{})
	}

	var runErr error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			logger.Warn("interrupted, stopping before next file", logging.Int("processed", stats.Processed))
			runErr = err
			break
		}
		stats.Processed++
		progress.Update(stats.Processed, stats.Found)
		if err := run.processFile(ctx, path); err != nil {
			runErr = err
			break
		}
	}
	progress.Finish(stats.Processed, stats.Found)

	stats.Elapsed = time.Since(start)
	return stats, runErr
}

func (d *Driver) reporter() Reporter {
	if d.Progress != nil {
		return d.Progress
	}
	if d.Out != nil {
		return &lineReporter{w: d.Out}
	}
	return nopReporter{}
}

type runState struct {
	driver *Driver
	logger *slog.Logger
	linker *linker.Linker
	src    string
	dest   string
	stats  *Stats
	// planned holds destinations a dry run has already claimed.
	planned map[string]struct{}
}

func (r *runState) processFile(ctx context.Context, path string) error {
	cfg := r.driver.Config
	logger := r.logger.With(logging.String(logging.FieldPath, path))

	set, err := r.driver.Prober.Probe(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if cfg.Probe.OnFailure == config.OnFailureAbort {
			return err
		}
		r.stats.ProbeFailed++
		logger.Error("could not read tags, skipping file", logging.Error(err))
		return nil
	}

	rec, notices, err := library.Normalize(set, path, library.Options{
		UnknownArtist: cfg.Library.UnknownArtist,
		UnicodeNFC:    cfg.Library.UnicodeNFC,
	})
	for _, notice := range notices {
		r.logNotice(ctx, logger, notice)
	}
	if err != nil {
		if errors.Is(err, library.ErrSkip) {
			r.stats.Skipped++
			logger.Warn("skipped file",
				logging.String(logging.FieldReason, err.Error()),
				logging.Any("tags", map[string]string(set)),
			)
			return nil
		}
		return err
	}

	destPath := library.BuildPath(r.dest, rec)
	logger = logger.With(logging.String(logging.FieldDest, destPath))

	if r.driver.DryRun {
		return r.planOnly(logger, path, destPath)
	}

	if err := library.EnsureParent(destPath); err != nil {
		r.stats.LinkFailed++
		logger.Error("could not create destination directory", logging.Error(err))
		return nil
	}

	outcome, err := r.linker.Link(path, destPath)
	if err != nil {
		r.stats.LinkFailed++
		logger.Error("link failed", logging.Error(err))
		return nil
	}

	var size int64
	switch outcome {
	case linker.Linked, linker.Copied:
		if outcome == linker.Linked {
			r.stats.Linked++
		} else {
			r.stats.Copied++
		}
		if info, statErr := os.Stat(path); statErr == nil {
			size = info.Size()
			r.stats.LinkedBytes += size
		}
		logger.Debug("placed file", logging.String("outcome", outcome.String()))
	case linker.AlreadyExists:
		r.reportDuplicate(path, destPath)
	}

	r.record(ctx, path, destPath, outcome, size)
	return nil
}

func (r *runState) planOnly(logger *slog.Logger, path, destPath string) error {
	exists, err := linker.Exists(destPath)
	if err != nil {
		r.stats.LinkFailed++
		logger.Error("could not inspect destination", logging.Error(err))
		return nil
	}
	if _, claimed := r.planned[destPath]; exists || claimed {
		r.reportDuplicate(path, destPath)
		return nil
	}
	r.planned[destPath] = struct{}{}
	r.stats.Linked++
	logger.Info("would link")
	return nil
}

func (r *runState) logNotice(ctx context.Context, logger *slog.Logger, notice library.Notice) {
	if notice.Level >= slog.LevelWarn {
		r.stats.Warnings++
	}
	attrs := []slog.Attr{}
	if notice.Tags != nil {
		attrs = append(attrs, logging.Any("tags", map[string]string(notice.Tags)))
	}
	logger.LogAttrs(ctx, notice.Level, notice.Message, attrs...)
}

// reportDuplicate counts a destination that already exists. Only the first
// occurrences are logged; the limit-th prints a one-time notice instead.
func (r *runState) reportDuplicate(path, destPath string) {
	r.stats.Existing++
	limit := r.driver.Config.Output.DuplicateWarningLimit
	switch {
	case r.stats.Existing < limit:
		r.logger.Warn("already have link, not adding; you likely have duplicate music or already ran against this path",
			logging.String(logging.FieldDest, relativeTo(r.dest, destPath)),
			logging.String(logging.FieldPath, relativeTo(r.src, path)),
		)
	case r.stats.Existing == limit:
		r.logger.Warn(fmt.Sprintf("printed this link warning %d times, no longer warning about this", limit))
	}
}

func (r *runState) record(ctx context.Context, path, destPath string, outcome linker.Outcome, size int64) {
	if r.driver.Ledger == nil {
		return
	}
	err := r.driver.Ledger.RecordLink(ctx, ledger.Entry{
		RunID:      r.driver.RunID,
		SourcePath: path,
		DestPath:   destPath,
		Outcome:    outcome.String(),
		SizeBytes:  size,
	})
	if err != nil {
		r.logger.Warn("could not record link in ledger", logging.String(logging.FieldPath, path), logging.Error(err))
	}
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
