package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"musiclink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Ledger.Path = filepath.Join(base, "state", "ledger.db")
	cfgVal.Output.Progress = config.ProgressOff

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLedger enables the SQLite ledger on the test config.
func WithLedger() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.Enabled = true
	}
}

// WithCrossDevice sets the cross-device policy on the test config.
func WithCrossDevice(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.CrossDevice = policy
	}
}

// WithProbeFailure sets the probe failure policy on the test config.
func WithProbeFailure(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Probe.OnFailure = policy
	}
}

// WithDuplicateWarningLimit overrides how many duplicate warnings are printed.
func WithDuplicateWarningLimit(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.DuplicateWarningLimit = limit
	}
}

// WithFFprobeStub writes an executable shell script standing in for ffprobe
// and points the config at it. An empty body exits 0 without output.
func WithFFprobeStub(body string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		if body == "" {
			body = "exit 0\n"
		}
		target := filepath.Join(binDir, "ffprobe")
		if err := os.WriteFile(target, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
			b.t.Fatalf("write ffprobe stub: %v", err)
		}
		b.cfg.Probe.FFprobeBinary = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
