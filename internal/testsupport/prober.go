package testsupport

import (
	"context"
	"fmt"
	"path/filepath"

	"musiclink/internal/tags"
)

// StaticProber returns canned tag sets keyed by file base name.
type StaticProber struct {
	Sets   map[string]tags.Set
	Errors map[string]error
	Calls  []string
}

// NewStaticProber returns an empty StaticProber.
func NewStaticProber() *StaticProber {
	return &StaticProber{Sets: map[string]tags.Set{}, Errors: map[string]error{}}
}

// Set registers the tags reported for files named base.
func (p *StaticProber) Set(base string, set tags.Set) *StaticProber {
	p.Sets[base] = set
	return p
}

// Fail registers a probe failure for files named base.
func (p *StaticProber) Fail(base string, err error) *StaticProber {
	p.Errors[base] = err
	return p
}

// Probe implements tags.Prober.
func (p *StaticProber) Probe(ctx context.Context, path string) (tags.Set, error) {
	p.Calls = append(p.Calls, path)
	if err := ctx.Err(); err != nil {
		return nil, &tags.ProbeError{Path: path, Backend: "static", Err: err}
	}
	base := filepath.Base(path)
	if err, ok := p.Errors[base]; ok {
		return nil, &tags.ProbeError{Path: path, Backend: "static", Err: err}
	}
	set, ok := p.Sets[base]
	if !ok {
		return nil, &tags.ProbeError{Path: path, Backend: "static", Err: fmt.Errorf("no tags registered for %s", base)}
	}
	return set.Clone(), nil
}
