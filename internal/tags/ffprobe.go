package tags

import (
	"context"
	"time"

	"musiclink/internal/media/ffprobe"
)

// FFprobe probes files by running the ffprobe binary.
type FFprobe struct {
	binary  string
	timeout time.Duration
}

// NewFFprobe builds an ffprobe-backed prober. An empty binary resolves
// "ffprobe" from PATH; a zero timeout disables the per-file deadline.
func NewFFprobe(binary string, timeout time.Duration) *FFprobe {
	return &FFprobe{binary: binary, timeout: timeout}
}

// Probe returns the format.tags mapping reported by ffprobe.
func (p *FFprobe) Probe(ctx context.Context, path string) (Set, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		return nil, &ProbeError{Path: path, Backend: "ffprobe", Err: err}
	}
	return Set(result.Tags()), nil
}
