// Package logging assembles structured slog loggers and formatting helpers used
// across musiclink.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and tags every record of a run with its run identifier so log
// lines can be matched to ledger entries. A run can also keep a JSON log
// file under the state directory; old run logs are pruned by age. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
