// Package pipeline drives a single musiclink run.
//
// Driver.Run discovers audio files under the source root and, strictly one
// file at a time, probes their tags, normalizes them into a library.Record,
// builds the destination path and hands the pair to the linker. Per-file
// problems are logged and counted in Stats; only discovery failures, a probe
// failure under the "abort" policy, and context cancellation end a run early.
//
// Progress goes to a Reporter (plain lines or a terminal progress bar) and
// WriteSummary renders the final counters once the run returns.
package pipeline
