package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingFormat reports ffprobe output that parsed as JSON but carried no
// format section.
var ErrMissingFormat = errors.New("ffprobe output has no format section")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Format *Format `json:"format"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
// Only stdout is parsed; stderr is attached to the error when ffprobe fails.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-v", "quiet", "-print_format", "json", "-show_format", "--", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, detail)
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	return Parse(stdout.Bytes())
}

// Parse decodes an ffprobe JSON document.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	if result.Format == nil {
		return Result{}, ErrMissingFormat
	}
	return result, nil
}

// Tags returns a copy of the container tag mapping. The result is never nil.
func (r Result) Tags() map[string]string {
	out := make(map[string]string)
	if r.Format == nil {
		return out
	}
	for k, v := range r.Format.Tags {
		out[k] = v
	}
	return out
}
