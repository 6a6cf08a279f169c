package tags

import (
	"context"
	"fmt"

	"musiclink/internal/config"
)

// Prober extracts the raw tag set of one file.
type Prober interface {
	Probe(ctx context.Context, path string) (Set, error)
}

// ProbeError reports that a backend could not produce tags for a file.
type ProbeError struct {
	Path    string
	Backend string
	Err     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s (%s): %v", e.Path, e.Backend, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// New returns the prober selected by cfg.Probe.Backend.
func New(cfg *config.Config) (Prober, error) {
	if cfg == nil {
		return NewFFprobe("", 0), nil
	}
	switch cfg.Probe.Backend {
	case config.ProbeBackendFFprobe:
		return NewFFprobe(cfg.Probe.FFprobeBinary, cfg.ProbeTimeout()), nil
	case config.ProbeBackendNative:
		return NewNative(), nil
	default:
		return nil, fmt.Errorf("unsupported probe backend %q", cfg.Probe.Backend)
	}
}
