package tags

// Set is the raw tag mapping reported for a single file. Keys keep the case
// the container used.
type Set map[string]string

// Key chains in resolution order. The first key holding a non-empty value wins.
var (
	ArtistKeys    = []string{"album_artist", "ALBUM_ARTIST", "AlbumArtist", "artist", "ARTIST", "Artist"}
	AlbumKeys     = []string{"album", "ALBUM", "Album"}
	TrackKeys     = []string{"track", "TRACK"}
	TitleKeys     = []string{"title", "TITLE", "Title"}
	DiscKeys      = []string{"disc", "DISC"}
	DiscTotalKeys = []string{"DISCTOTAL"}
)

// FirstPresent returns the value of the first key in keys that is present in
// the set with a non-empty value.
func (s Set) FirstPresent(keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := s[key]
		if !ok || value == "" {
			continue
		}
		return value, true
	}
	return "", false
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
