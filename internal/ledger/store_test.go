package ledger_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"musiclink/internal/ledger"
	"musiclink/internal/testsupport"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithLedger())
	store, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLedger())
	store, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	defer store.Close()

	if store.Path() != cfg.Ledger.Path {
		t.Fatalf("Path = %q, want %q", store.Path(), cfg.Ledger.Path)
	}
	if _, err := os.Stat(cfg.Ledger.Path); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestOpenReusesExistingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	first, err := ledger.OpenPath(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	id, err := first.BeginRun(context.Background(), "/src", "/dest", false)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := ledger.OpenPath(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()
	if _, err := second.GetRun(context.Background(), id); err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
}

func TestOpenPathRejectsEmpty(t *testing.T) {
	if _, err := ledger.OpenPath("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	id, err := store.BeginRun(ctx, "/music/in", "/music/out", true)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if id == "" {
		t.Fatal("expected run id")
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Finished() {
		t.Fatal("run should not be finished yet")
	}
	if !run.DryRun || run.SourceRoot != "/music/in" || run.DestRoot != "/music/out" {
		t.Fatalf("unexpected run: %+v", run)
	}

	entries := []ledger.Entry{
		{RunID: id, SourcePath: "/music/in/a.mp3", DestPath: "/music/out/A/B/01. a.mp3", Outcome: "linked", SizeBytes: 10},
		{RunID: id, SourcePath: "/music/in/b.mp3", DestPath: "/music/out/A/B/02. b.mp3", Outcome: "exists"},
	}
	for _, e := range entries {
		if err := store.RecordLink(ctx, e); err != nil {
			t.Fatalf("RecordLink: %v", err)
		}
	}

	totals := ledger.Totals{Found: 3, Linked: 1, Existing: 1, Skipped: 1}
	if err := store.FinishRun(ctx, id, totals, errors.New("one file failed")); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err = store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !run.Finished() {
		t.Fatal("expected finished run")
	}
	if run.Found != 3 || run.Linked != 1 || run.Existing != 1 || run.Skipped != 1 || run.Failed != 0 {
		t.Fatalf("unexpected totals: %+v", run)
	}
	if run.ErrorMessage != "one file failed" {
		t.Fatalf("error message = %q", run.ErrorMessage)
	}

	got, err := store.Links(ctx, id)
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Outcome != "linked" || got[0].SizeBytes != 10 || got[1].Outcome != "exists" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.BeginRun(ctx, "/src", "/dest", false)
		if err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestMissingRun(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	if _, err := store.GetRun(ctx, "nope"); !errors.Is(err, ledger.ErrRunNotFound) {
		t.Fatalf("GetRun error = %v, want ErrRunNotFound", err)
	}
	if err := store.FinishRun(ctx, "nope", ledger.Totals{}, nil); !errors.Is(err, ledger.ErrRunNotFound) {
		t.Fatalf("FinishRun error = %v, want ErrRunNotFound", err)
	}
}
