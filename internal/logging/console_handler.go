package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeFormat = "15:04:05"

// consoleOutput is shared by a handler and every handler derived from it so
// lines from one logger never interleave.
type consoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *consoleOutput) writeLine(line string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := io.WriteString(o.w, line)
	return err
}

// prettyHandler renders records as single human-readable lines:
//
//	15:04:05 WARN pipeline: no album found, treating as a single path=/music/a.mp3
//
// The component attribute becomes the line prefix and run_id is left to the
// JSON output.
type prettyHandler struct {
	out       *consoleOutput
	level     slog.Leveler
	addSource bool
	component string
	prefix    string
	fields    []field
}

type field struct {
	key   string
	value slog.Value
}

func newPrettyHandler(w io.Writer, lvl slog.Leveler, addSource bool) slog.Handler {
	return &prettyHandler{out: &consoleOutput{w: w}, level: lvl, addSource: addSource}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	component := h.component
	fields := append([]field(nil), h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		component, fields = h.collect(component, fields, h.prefix, attr)
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.Local().Format(consoleTimeFormat))
	b.WriteByte(' ')
	b.WriteString(levelLabel(record.Level))
	b.WriteByte(' ')
	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteString(msg)
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(formatValue(f.value))
	}
	b.WriteByte('\n')
	return h.out.writeLine(b.String())
}

// collect flattens attr into fields under prefix, lifting the first
// component attribute out of the field list.
func (h *prettyHandler) collect(component string, fields []field, prefix string, attr slog.Attr) (string, []field) {
	if attr.Equal(slog.Attr{}) {
		return component, fields
	}
	attr.Value = attr.Value.Resolve()
	key := attr.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}
	switch {
	case attr.Value.Kind() == slog.KindGroup:
		if key == "" {
			key = prefix
		}
		for _, child := range attr.Value.Group() {
			component, fields = h.collect(component, fields, key, child)
		}
	case key == FieldRunID:
	case key == FieldComponent && component == "":
		component = attr.Value.String()
	default:
		fields = append(fields, field{key: key, value: attr.Value})
	}
	return component, fields
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = append([]field(nil), h.fields...)
	for _, attr := range attrs {
		next.component, next.fields = h.collect(next.component, next.fields, h.prefix, attr)
	}
	return &next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.prefix != "" {
		next.prefix += "." + name
	} else {
		next.prefix = name
	}
	return &next
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			s = x.Error()
		case map[string]string:
			s = formatTagMap(x)
		default:
			s = fmt.Sprint(x)
		}
	default:
		return v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

// formatTagMap renders a raw tag set in key order, e.g. {album=X track=3}.
func formatTagMap(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
