// Package library turns raw tag sets into normalized track records and maps
// those records onto the destination layout
//
//	<dest>/<artist>/<album>/[Disc <n>／<total>/]<nn>. <title><ext>
//
// Normalize applies the tag fallback chains, defaulting, and sanitization
// rules and reports files that cannot be placed through errors matching
// ErrSkip. BuildPath is a pure function of its inputs; EnsureParent is the
// only part of the package that touches the filesystem.
package library
