package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"musiclink/internal/config"
)

// progressInterval is how often line progress is printed, in files.
const progressInterval = 10

// Reporter receives progress after each file starts and once at the end.
type Reporter interface {
	Update(processed, found int)
	Finish(processed, found int)
}

// NewReporter selects a Reporter for mode. Line output goes to out; the bar
// draws on term, which is used for "auto" only when isTerminal is true.
func NewReporter(mode string, out, term io.Writer, isTerminal bool) Reporter {
	switch mode {
	case config.ProgressOff:
		return nopReporter{}
	case config.ProgressBar:
		return &barReporter{w: term}
	case config.ProgressLog:
		return &lineReporter{w: out}
	default:
		if isTerminal {
			return &barReporter{w: term}
		}
		return &lineReporter{w: out}
	}
}

// FormatProgress renders "processed / found (pct%)". An empty run reports 100%.
func FormatProgress(processed, found int) string {
	pct := 100.0
	if found > 0 {
		pct = float64(processed) / float64(found) * 100
	}
	return fmt.Sprintf("%d / %d (%.1f%%)", processed, found, pct)
}

type lineReporter struct {
	w io.Writer
}

func (r *lineReporter) Update(processed, found int) {
	if (processed-1)%progressInterval == 0 {
		fmt.Fprintln(r.w, FormatProgress(processed, found))
	}
}

func (r *lineReporter) Finish(processed, found int) {
	fmt.Fprintln(r.w, FormatProgress(processed, found))
}

type barReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *barReporter) ensure(found int) {
	if r.bar != nil {
		return
	}
	r.bar = progressbar.NewOptions(found,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("linking"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(r.w) }),
	)
}

func (r *barReporter) Update(processed, found int) {
	r.ensure(found)
	_ = r.bar.Set(processed)
}

func (r *barReporter) Finish(processed, found int) {
	r.ensure(found)
	_ = r.bar.Set(processed)
	_ = r.bar.Finish()
}

type nopReporter struct{}

func (nopReporter) Update(int, int) {}

func (nopReporter) Finish(int, int) {}
