// Package textutil provides text helpers for turning tag values into safe
// path segments.
//
// Tag values may contain forward slashes ("AC/DC", "1/2") that would
// otherwise be read as directory separators. They are replaced with the
// full-width solidus U+FF0F, which renders almost identically but is an
// ordinary character to every filesystem. Optional Unicode NFC normalization
// keeps composed and decomposed spellings of the same name in one directory.
package textutil
