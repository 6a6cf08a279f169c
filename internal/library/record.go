package library

import (
	"errors"
	"fmt"
	"log/slog"

	"musiclink/internal/tags"
)

// ErrSkip is matched by every error that excludes a file from linking.
var ErrSkip = errors.New("file skipped")

var (
	ErrMissingTrack             = fmt.Errorf("%w: no track tag", ErrSkip)
	ErrMissingAlbumWithoutTitle = fmt.Errorf("%w: no album tag and no usable title", ErrSkip)
	ErrMissingTitle             = fmt.Errorf("%w: no usable title", ErrSkip)
)

// Record is the resolved, path-safe description of one track.
type Record struct {
	Artist string
	Album  string
	Track  string
	Title  string
	// Disc is empty when the release has a single disc.
	Disc       string
	Extension  string
	SourcePath string
}

// IsSingle reports whether the track is placed without an album folder.
func (r Record) IsSingle() bool {
	return r.Album == ""
}

// Notice is a non-fatal observation made while normalizing a file.
type Notice struct {
	Level   slog.Level
	Message string
	// Tags carries the raw tag set when the notice asks for inspection.
	Tags tags.Set
}

// Options controls normalization defaults.
type Options struct {
	UnknownArtist string
	UnicodeNFC    bool
}
