package tags

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
)

// id3Frames maps ID3v2 text frames onto the keys ffprobe reports for MP3.
var id3Frames = []struct {
	frame string
	key   string
}{
	{"TPE2", "album_artist"},
	{"TPE1", "artist"},
	{"TALB", "album"},
	{"TIT2", "title"},
	{"TRCK", "track"},
	{"TPOS", "disc"},
}

// Native reads tags in-process without an external tool. MP3 files are read
// through their ID3v2.3/2.4 frames so "N/Total" values survive verbatim;
// everything else, including MP3 files with no ID3v2 tag or an ID3v2.2 one,
// goes through the generic reader.
type Native struct{}

// NewNative returns the in-process prober.
func NewNative() *Native {
	return &Native{}
}

// Probe returns the tags of path keyed like ffprobe output.
func (p *Native) Probe(ctx context.Context, path string) (Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProbeError{Path: path, Backend: "native", Err: err}
	}
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		set, err := readID3v2(path)
		if err != nil {
			return nil, &ProbeError{Path: path, Backend: "native", Err: err}
		}
		if len(set) > 0 {
			return set, nil
		}
	}
	set, err := readGeneric(path)
	if err != nil {
		return nil, &ProbeError{Path: path, Backend: "native", Err: err}
	}
	return set, nil
}

func readID3v2(path string) (Set, error) {
	frames := make([]string, 0, len(id3Frames))
	for _, f := range id3Frames {
		frames = append(frames, f.frame)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := id3v2.ParseReader(file, id3v2.Options{Parse: true, ParseFrames: frames})
	if err != nil {
		// ID3v2.2 tags are left to the generic reader.
		if errors.Is(err, id3v2.ErrUnsupportedVersion) {
			return Set{}, nil
		}
		return nil, err
	}

	set := make(Set)
	for _, f := range id3Frames {
		if value := cleanID3Text(t.GetTextFrame(f.frame).Text); value != "" {
			set[f.key] = value
		}
	}
	return set, nil
}

// cleanID3Text drops the NUL terminators some taggers leave behind and joins
// ID3v2.4 multi-value frames.
func cleanID3Text(text string) string {
	text = strings.Trim(text, "\x00 ")
	return strings.ReplaceAll(text, "\x00", ", ")
}

func readGeneric(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return Set{}, nil
		}
		return nil, err
	}

	set := make(Set)
	put := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			set[key] = value
		}
	}
	put("album_artist", m.AlbumArtist())
	put("artist", m.Artist())
	put("album", m.Album())
	put("title", m.Title())
	if track, _ := m.Track(); track > 0 {
		put("track", strconv.Itoa(track))
	}
	if disc, total := m.Disc(); disc > 0 {
		put("disc", strconv.Itoa(disc))
		if total > 0 {
			put("DISCTOTAL", strconv.Itoa(total))
		}
	}
	return set, nil
}
