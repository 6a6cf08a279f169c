package linker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLinkCreatesHardlink(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")
	writeFile(t, src, "audio")

	outcome, err := New(CrossDeviceFail).Link(src, dst)
	if err != nil {
		t.Fatalf("Link returned error: %v", err)
	}
	if outcome != Linked {
		t.Fatalf("outcome = %v, want linked", outcome)
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(srcInfo, dstInfo) {
		t.Fatal("expected destination to share the source inode")
	}
}

func TestLinkLeavesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	var l Linker
	outcome, err := l.Link(src, dst)
	if err != nil {
		t.Fatalf("Link returned error: %v", err)
	}
	if outcome != AlreadyExists {
		t.Fatalf("outcome = %v, want exists", outcome)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "old" {
		t.Fatalf("destination modified: %q", got)
	}
}

func TestLinkTreatsDanglingSymlinkAsExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")
	writeFile(t, src, "audio")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), dst); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	outcome, err := New(CrossDeviceFail).Link(src, dst)
	if err != nil || outcome != AlreadyExists {
		t.Fatalf("Link = %v, %v; want exists", outcome, err)
	}
}

func TestLinkIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")
	writeFile(t, src, "audio")

	l := New(CrossDeviceFail)
	if outcome, err := l.Link(src, dst); err != nil || outcome != Linked {
		t.Fatalf("first Link = %v, %v", outcome, err)
	}
	if outcome, err := l.Link(src, dst); err != nil || outcome != AlreadyExists {
		t.Fatalf("second Link = %v, %v", outcome, err)
	}
}

func TestLinkMissingParentIsLinkError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	writeFile(t, src, "audio")

	_, err := New(CrossDeviceFail).Link(src, filepath.Join(dir, "missing", "dst.mp3"))
	var lerr *LinkError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LinkError, got %T (%v)", err, err)
	}
	if IsCrossDevice(err) {
		t.Fatal("missing parent must not be reported as cross-device")
	}
}

func TestLinkRaceReportsExisting(t *testing.T) {
	old := linkFunc
	linkFunc = func(oldname, newname string) error {
		return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: os.ErrExist}
	}
	defer func() { linkFunc = old }()

	dir := t.TempDir()
	outcome, err := New(CrossDeviceFail).Link(filepath.Join(dir, "a"), filepath.Join(dir, "b"))
	if err != nil || outcome != AlreadyExists {
		t.Fatalf("Link = %v, %v; want exists", outcome, err)
	}
}
