package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"musiclink/internal/ledger"
	"musiclink/internal/linker"
	"musiclink/internal/logging"
	"musiclink/internal/pipeline"
	"musiclink/internal/preflight"
	"musiclink/internal/runlock"
	"musiclink/internal/tags"
)

func runLink(cmd *cobra.Command, ctx *commandContext, srcArg, destArg string, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	src, err := filepath.Abs(srcArg)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	dest, err := filepath.Abs(destArg)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	if failed, ok := preflight.FirstFailure(preflight.RunAll(cfg, src, dest)); ok {
		return fmt.Errorf("preflight: %s: %s (run `musiclink check` for a full report)", failed.Name, failed.Detail)
	}

	lock, err := runlock.Acquire(cfg.LockDir(), dest)
	if err != nil {
		return err
	}
	defer lock.Release()

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *ledger.Store
	runID := uuid.NewString()
	if cfg.Ledger.Enabled {
		store, err = ledger.Open(cfg)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer store.Close()
		if runID, err = store.BeginRun(runCtx, src, dest, dryRun); err != nil {
			return fmt.Errorf("begin ledger run: %w", err)
		}
	}

	logger, runLog, err := logging.NewRunLogger(cfg, cmd.ErrOrStderr(), runID, time.Now())
	if err != nil {
		return err
	}
	defer runLog.Close()
	if runLog != nil {
		logger.Debug("run log opened", logging.String(logging.FieldPath, runLog.Path))
	}

	prober, err := tags.New(cfg)
	if err != nil {
		return err
	}

	driver := &pipeline.Driver{
		Config: cfg,
		Prober: prober,
		Linker: linker.New(cfg.Library.CrossDevice),
		Logger: logger,
		Progress: pipeline.NewReporter(cfg.Output.Progress,
			cmd.OutOrStdout(), cmd.ErrOrStderr(), isTerminal(cmd.ErrOrStderr())),
		RunID:  runID,
		DryRun: dryRun,
	}
	if store != nil && !dryRun {
		driver.Ledger = store
	}

	if ctx.configPath != "" {
		logger.Debug("configuration resolved", logging.String("config", ctx.configPath))
	}
	stats, runErr := driver.Run(runCtx, src, dest)

	pipeline.WriteSummary(cmd.OutOrStdout(), stats, dryRun)

	if store != nil {
		// The run context may already be cancelled; finish the row regardless.
		if err := store.FinishRun(context.Background(), runID, stats.Totals(), runErr); err != nil {
			logger.Warn("could not finalize ledger run", logging.Error(err))
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return runErr
		}
		return fmt.Errorf("run stopped: %w", runErr)
	}
	if n := stats.Failed(); n > 0 {
		return fmt.Errorf("%d file(s) could not be read or linked; see the log above", n)
	}
	return nil
}
