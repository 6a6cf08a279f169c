// Package tags extracts embedded metadata from audio files and resolves
// case-variant tag keys.
//
// A Prober turns a file path into a Set, the raw key/value mapping reported
// by the backend. The FFprobe backend shells out to ffprobe and returns its
// format.tags mapping untouched; the Native backend reads tags in-process and
// maps them onto the key names ffprobe would report. Field resolution over a
// Set goes through FirstPresent and the ordered key chains declared here.
package tags
