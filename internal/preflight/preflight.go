package preflight

import (
	"musiclink/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for linking src into dest.
func RunAll(cfg *config.Config, src, dest string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckSourceAccess("Source directory", src))
	results = append(results, CheckDestinationAccess("Destination directory", dest))
	results = append(results, CheckSameDevice(src, dest, cfg.Library.CrossDevice))
	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, dependencyResult(status.Name, status.Available, status.Optional, status.Path, status.Detail))
	}
	return results
}

// FirstFailure returns the first failed result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
