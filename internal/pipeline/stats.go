package pipeline

import (
	"time"

	"musiclink/internal/ledger"
)

// Stats tracks aggregate counters across a run. It is owned by the driver
// while a run is in progress.
type Stats struct {
	Found       int
	Processed   int
	Linked      int
	Copied      int
	Existing    int
	Skipped     int
	ProbeFailed int
	LinkFailed  int
	Warnings    int
	LinkedBytes int64
	Elapsed     time.Duration
}

// Failed returns the number of files that could not be probed or linked.
func (s Stats) Failed() int {
	return s.ProbeFailed + s.LinkFailed
}

// Totals converts the counters into the ledger's run totals.
func (s Stats) Totals() ledger.Totals {
	return ledger.Totals{
		Found:    s.Found,
		Linked:   s.Linked,
		Copied:   s.Copied,
		Existing: s.Existing,
		Skipped:  s.Skipped,
		Failed:   s.Failed(),
	}
}
