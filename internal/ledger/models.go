package ledger

import "time"

// Run is one recorded musiclink invocation.
type Run struct {
	ID           string
	SourceRoot   string
	DestRoot     string
	DryRun       bool
	StartedAt    time.Time
	FinishedAt   time.Time
	Found        int
	Linked       int
	Copied       int
	Existing     int
	Skipped      int
	Failed       int
	ErrorMessage string
}

// Finished reports whether the run recorded a completion time.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Totals carries the final counters of a run.
type Totals struct {
	Found    int
	Linked   int
	Copied   int
	Existing int
	Skipped  int
	Failed   int
}

// Entry is one destination placed (or found present) during a run.
type Entry struct {
	RunID      string
	SourcePath string
	DestPath   string
	Outcome    string
	SizeBytes  int64
	CreatedAt  time.Time
}
