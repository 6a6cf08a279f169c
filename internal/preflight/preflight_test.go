package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"musiclink/internal/config"
	"musiclink/internal/testsupport"
)

func TestCheckSourceAccess_OK(t *testing.T) {
	result := CheckSourceAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckSourceAccess_NotExist(t *testing.T) {
	result := CheckSourceAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckSourceAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckSourceAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDestinationAccess(t *testing.T) {
	existing := t.TempDir()
	if result := CheckDestinationAccess("dest", existing); !result.Passed {
		t.Fatalf("expected pass for existing dir, got: %s", result.Detail)
	}

	missing := filepath.Join(existing, "a", "b")
	result := CheckDestinationAccess("dest", missing)
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}

	f := filepath.Join(existing, "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDestinationAccess("dest", f); result.Passed {
		t.Fatal("expected failure for file destination")
	}
}

func TestCheckSameDeviceWithinTempDir(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	result := CheckSameDevice(src, filepath.Join(base, "dest", "not-yet"), config.CrossDeviceFail)
	if !result.Passed {
		t.Fatalf("expected same device, got: %s", result.Detail)
	}
}

func TestCheckSameDeviceMissingSource(t *testing.T) {
	base := t.TempDir()
	result := CheckSameDevice(filepath.Join(base, "missing"), base, config.CrossDeviceFail)
	if result.Passed {
		t.Fatal("expected failure for missing source")
	}
}

func TestRunAllAndFirstFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFFprobeStub(""),
		testsupport.WithCrossDevice(config.CrossDeviceCopy),
	)

	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "library")
	results := RunAll(cfg, src, dest)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if failed, ok := FirstFailure(results); ok {
		t.Fatalf("unexpected failure: %+v", failed)
	}

	cfg.Probe.FFprobeBinary = "clearly-not-present-ffprobe"
	results = RunAll(cfg, src, dest)
	failed, ok := FirstFailure(results)
	if !ok || failed.Name != "FFprobe" {
		t.Fatalf("expected FFprobe failure, got %+v (%v)", failed, ok)
	}

	cfg.Probe.Backend = config.ProbeBackendNative
	if failed, ok := FirstFailure(RunAll(cfg, src, dest)); ok {
		t.Fatalf("native backend should not require ffprobe, got %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if RunAll(nil, "a", "b") != nil {
		t.Fatal("expected nil results for nil config")
	}
}
