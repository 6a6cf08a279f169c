package library

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"musiclink/internal/tags"
)

func hasNotice(notices []Notice, fragment string) bool {
	for _, n := range notices {
		if strings.Contains(n.Message, fragment) {
			return true
		}
	}
	return false
}

func TestNormalizeFullRecord(t *testing.T) {
	set := tags.Set{
		"album_artist": "Band",
		"artist":       "Singer",
		"album":        "Record",
		"track":        "5/12",
		"title":        "Song",
	}
	rec, notices, err := Normalize(set, "/music/in/song.mp3", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	want := Record{Artist: "Band", Album: "Record", Track: "5", Title: "Song", Extension: ".mp3", SourcePath: "/music/in/song.mp3"}
	if rec != want {
		t.Fatalf("unexpected record:\n got %+v\nwant %+v", rec, want)
	}
	if len(notices) != 0 {
		t.Fatalf("expected no notices, got %+v", notices)
	}
}

func TestNormalizeMissingArtistUsesPlaceholder(t *testing.T) {
	set := tags.Set{"album": "Record", "track": "1", "title": "Song"}

	rec, notices, err := Normalize(set, "/m/a.flac", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Artist != "Unidentified Artist" {
		t.Fatalf("expected placeholder artist, got %q", rec.Artist)
	}
	if !hasNotice(notices, "artist") {
		t.Fatalf("expected artist warning, got %+v", notices)
	}

	rec, _, err = Normalize(set, "/m/a.flac", Options{UnknownArtist: "Various"})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Artist != "Various" {
		t.Fatalf("expected configured placeholder, got %q", rec.Artist)
	}
}

func TestNormalizeMissingTrackSkips(t *testing.T) {
	set := tags.Set{"artist": "Band", "album": "Record", "title": "Song", "Track": "3"}
	_, _, err := Normalize(set, "/m/a.mp3", Options{})
	if !errors.Is(err, ErrMissingTrack) {
		t.Fatalf("expected ErrMissingTrack, got %v", err)
	}
	if !errors.Is(err, ErrSkip) {
		t.Fatalf("expected error to match ErrSkip, got %v", err)
	}
}

func TestNormalizeNonNumericTrackWarnsButKeepsValue(t *testing.T) {
	set := tags.Set{"artist": "Band", "album": "Record", "track": "A1", "title": "Song"}
	rec, notices, err := Normalize(set, "/m/a.mp3", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Track != "A1" {
		t.Fatalf("expected track preserved, got %q", rec.Track)
	}
	if !hasNotice(notices, `"A1" may not be valid`) {
		t.Fatalf("expected track warning, got %+v", notices)
	}
}

func TestNormalizeMissingTitleUsesBaseName(t *testing.T) {
	set := tags.Set{"artist": "Band", "album": "Record", "TRACK": "7"}
	rec, notices, err := Normalize(set, "/music/in/07 - Intro.m4a", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Title != "07 - Intro" {
		t.Fatalf("expected base name title, got %q", rec.Title)
	}
	if !hasNotice(notices, "title") {
		t.Fatalf("expected title warning, got %+v", notices)
	}
}

func TestNormalizeMissingAlbumBecomesSingle(t *testing.T) {
	set := tags.Set{"artist": "Band", "track": "3", "title": "Song"}
	rec, notices, err := Normalize(set, "/m/song.mp3", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if !rec.IsSingle() || rec.Track != "" || rec.Album != "" {
		t.Fatalf("expected single without track, got %+v", rec)
	}
	if !hasNotice(notices, "single") {
		t.Fatalf("expected single warning, got %+v", notices)
	}
}

func TestNormalizeMissingAlbumAndTitleSkips(t *testing.T) {
	set := tags.Set{"artist": "Band", "track": "3"}
	_, _, err := Normalize(set, "/m/.mp3", Options{})
	if !errors.Is(err, ErrMissingAlbumWithoutTitle) {
		t.Fatalf("expected ErrMissingAlbumWithoutTitle, got %v", err)
	}

	set["album"] = "Record"
	_, _, err = Normalize(set, "/m/.mp3", Options{})
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}
}

func TestNormalizeSanitizesSlashes(t *testing.T) {
	set := tags.Set{"artist": "AC/DC", "album": "Live/Loud", "track": "1", "title": "Either/Or"}
	rec, _, err := Normalize(set, "/m/x.mp3", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Artist != "AC／DC" || rec.Album != "Live／Loud" || rec.Title != "Either／Or" {
		t.Fatalf("expected full-width slashes, got %+v", rec)
	}
}

func TestNormalizeGuardsDotSegments(t *testing.T) {
	set := tags.Set{"artist": "..", "album": ".", "track": "1", "title": "Song"}
	rec, _, err := Normalize(set, "/m/x.mp3", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Artist == ".." || rec.Album == "." {
		t.Fatalf("expected dot segments to be rewritten, got %+v", rec)
	}
}

func TestNormalizeDisc(t *testing.T) {
	tests := []struct {
		name       string
		disc       string
		discTotal  string
		want       string
		wantNotice bool
	}{
		{name: "single disc number", disc: "1", want: ""},
		{name: "one of one", disc: "1/1", want: ""},
		{name: "one of one via total", disc: "1", discTotal: "1", want: ""},
		{name: "second of two via total", disc: "2", discTotal: "2", want: "2／2"},
		{name: "slash form", disc: "2/3", want: "2／3"},
		{name: "slash form keeps total tag out", disc: "1/3", discTotal: "3", want: "1／3"},
		{name: "first of two via total", disc: "1", discTotal: "2", want: "1／2"},
		{name: "inconsistent one of one", disc: "1/1", discTotal: "2", want: "1／1", wantNotice: true},
		{name: "disc without total", disc: "3", want: "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := tags.Set{"artist": "Band", "album": "Record", "track": "1", "title": "Song", "disc": tt.disc}
			if tt.discTotal != "" {
				set["DISCTOTAL"] = tt.discTotal
			}
			rec, notices, err := Normalize(set, "/m/x.mp3", Options{})
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if rec.Disc != tt.want {
				t.Fatalf("disc = %q, want %q", rec.Disc, tt.want)
			}
			var inspect bool
			for _, n := range notices {
				if n.Tags != nil && n.Level == slog.LevelInfo {
					inspect = true
				}
			}
			if inspect != tt.wantNotice {
				t.Fatalf("inspection notice = %v, want %v (%+v)", inspect, tt.wantNotice, notices)
			}
		})
	}
}

func TestNormalizeUppercaseDiscKey(t *testing.T) {
	set := tags.Set{"ARTIST": "Band", "ALBUM": "Record", "TRACK": "4", "TITLE": "Song", "DISC": "2", "DISCTOTAL": "2"}
	rec, _, err := Normalize(set, "/m/x.flac", Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.Disc != "2／2" || rec.Artist != "Band" || rec.Album != "Record" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestIsNumericLabel(t *testing.T) {
	for _, ok := range []string{"5", "05", " 7 ", "", "1e2"} {
		if !isNumericLabel(ok) {
			t.Fatalf("expected %q to be numeric", ok)
		}
	}
	for _, bad := range []string{"A1", "5b", "NaN", "one"} {
		if isNumericLabel(bad) {
			t.Fatalf("expected %q to be non-numeric", bad)
		}
	}
}
