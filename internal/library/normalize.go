package library

import (
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"musiclink/internal/tags"
	"musiclink/internal/textutil"
)

const defaultUnknownArtist = "Unidentified Artist"

// Normalize resolves the semantic fields of a tag set. Skipped files return a
// zero Record and an error matching ErrSkip; notices are returned either way.
func Normalize(set tags.Set, sourcePath string, opts Options) (Record, []Notice, error) {
	var notices []Notice
	warn := func(msg string) {
		notices = append(notices, Notice{Level: slog.LevelWarn, Message: msg})
	}

	ext := filepath.Ext(sourcePath)

	artist, ok := set.FirstPresent(tags.ArtistKeys...)
	if !ok {
		artist = opts.UnknownArtist
		if artist == "" {
			artist = defaultUnknownArtist
		}
		warn("could not find artist name")
	}
	album, hasAlbum := set.FirstPresent(tags.AlbumKeys...)
	title, hasTitle := set.FirstPresent(tags.TitleKeys...)
	disc, hasDisc := set.FirstPresent(tags.DiscKeys...)
	discTotal, hasDiscTotal := set.FirstPresent(tags.DiscTotalKeys...)

	track, ok := set.FirstPresent(tags.TrackKeys...)
	if !ok {
		return Record{}, notices, ErrMissingTrack
	}

	// "5/12" keeps the track number only.
	if idx := strings.Index(track, "/"); idx >= 0 {
		track = track[:idx]
	}
	if !isNumericLabel(track) {
		warn("track number " + strconv.Quote(track) + " may not be valid")
	}

	if !hasTitle {
		warn("could not find song title")
		title = strings.TrimSuffix(filepath.Base(sourcePath), ext)
	}

	if !hasAlbum {
		if title == "" {
			return Record{}, notices, ErrMissingAlbumWithoutTitle
		}
		warn("no album found, treating as a single")
		track = ""
		album = ""
	}
	if title == "" {
		return Record{}, notices, ErrMissingTitle
	}

	rec := Record{
		Artist:     textutil.SanitizeSegment(artist, opts.UnicodeNFC),
		Album:      textutil.SanitizeSegment(album, opts.UnicodeNFC),
		Track:      track,
		Title:      textutil.SanitizeSegment(title, opts.UnicodeNFC),
		Extension:  ext,
		SourcePath: sourcePath,
	}

	if hasDisc {
		switch {
		case strings.Contains(disc, "/"):
			disc = textutil.ReplaceSlashes(disc)
		case hasDiscTotal:
			disc = disc + textutil.FullWidthSlash + discTotal
		}
		if disc == "1"+textutil.FullWidthSlash+"1" || disc == "1" {
			if !hasDiscTotal || discTotal == "1" {
				disc = ""
			} else {
				notices = append(notices, Notice{
					Level:   slog.LevelInfo,
					Message: "disc 1 reported alongside disc total " + strconv.Quote(discTotal) + ", keeping disc folder",
					Tags:    set.Clone(),
				})
			}
		}
		rec.Disc = disc
	}

	return rec, notices, nil
}

// isNumericLabel reports whether a track value reads as a number. An empty
// value (from a "/Total" tag) counts as numeric.
func isNumericLabel(track string) bool {
	trimmed := strings.TrimSpace(track)
	if trimmed == "" {
		return true
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	return err == nil && !math.IsNaN(n)
}
