// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no musiclink-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing container format metadata
//   - Format: container-level metadata including the embedded tag mapping
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
