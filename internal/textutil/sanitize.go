package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FullWidthSlash replaces "/" inside tag-derived path segments.
const FullWidthSlash = "／"

// fullWidthStop replaces the dots of "." and ".." segments.
const fullWidthStop = "．"

// ReplaceSlashes swaps every forward slash for a full-width slash.
func ReplaceSlashes(value string) string {
	return strings.ReplaceAll(value, "/", FullWidthSlash)
}

// GuardDotSegment rewrites the relative path names "." and ".." so a tag value
// can never address the current or parent directory. Other values are
// returned unchanged.
func GuardDotSegment(value string) string {
	if value == "." || value == ".." {
		return strings.Repeat(fullWidthStop, len(value))
	}
	return value
}

// NFC returns value in Unicode normalization form C.
func NFC(value string) string {
	return norm.NFC.String(value)
}

// SanitizeSegment prepares a tag value for use as a single path segment.
func SanitizeSegment(value string, nfc bool) string {
	if nfc {
		value = NFC(value)
	}
	return GuardDotSegment(ReplaceSlashes(value))
}
