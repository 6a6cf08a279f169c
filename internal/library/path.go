package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// BuildPath returns the destination of rec under destRoot. Identical inputs
// always produce identical paths.
func BuildPath(destRoot string, rec Record) string {
	discSegment := "."
	if rec.Disc != "" {
		discSegment = "Disc " + rec.Disc
	}
	return filepath.Join(destRoot, rec.Artist, rec.Album, discSegment, FileName(rec))
}

// FileName returns "<nn>. <title><ext>" for album tracks and "<title><ext>"
// for singles and tracks without a number.
func FileName(rec Record) string {
	if rec.Track == "" {
		return rec.Title + rec.Extension
	}
	return ZeroPad(rec.Track, 2) + ". " + rec.Title + rec.Extension
}

// ZeroPad left-pads value with zeros to at least width characters. Longer
// values are returned unchanged.
func ZeroPad(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n >= width {
		return value
	}
	return strings.Repeat("0", width-n) + value
}

// EnsureParent creates every missing directory above path.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
