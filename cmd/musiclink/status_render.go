package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"musiclink/internal/preflight"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"

	statusLabelWidth = 24
)

// resultKind grades a preflight result. Passing results that degrade the run
// (optional tools missing, copying instead of linking) are warnings.
func resultKind(r preflight.Result) statusKind {
	switch {
	case !r.Passed:
		return statusError
	case strings.HasSuffix(r.Detail, "(optional)"), strings.Contains(r.Detail, "will be copied"):
		return statusWarn
	default:
		return statusOK
	}
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", status)
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(line))
	if colorize {
		return []string{ansiBold + line + ansiReset, rule}
	}
	return []string{line, rule}
}

func renderPreflight(w io.Writer, results []preflight.Result, colorize bool) {
	lines := renderSectionHeader("Preflight", colorize)
	for _, r := range results {
		lines = append(lines, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
