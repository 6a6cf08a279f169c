package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Probe backends.
const (
	ProbeBackendFFprobe = "ffprobe"
	ProbeBackendNative  = "native"
)

// Probe failure policies.
const (
	OnFailureSkip  = "skip"
	OnFailureAbort = "abort"
)

// Cross-device link policies.
const (
	CrossDeviceFail = "fail"
	CrossDeviceCopy = "copy"
)

// Progress output modes.
const (
	ProgressAuto = "auto"
	ProgressBar  = "bar"
	ProgressLog  = "log"
	ProgressOff  = "off"
)

// Paths contains directory configuration for state kept between runs.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Probe contains configuration for tag extraction.
type Probe struct {
	Backend        string `toml:"backend"`
	FFprobeBinary  string `toml:"ffprobe_binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	OnFailure      string `toml:"on_failure"`
}

// Library contains configuration for discovery and the destination layout.
type Library struct {
	Extensions    []string `toml:"extensions"`
	UnknownArtist string   `toml:"unknown_artist"`
	CrossDevice   string   `toml:"cross_device"`
	UnicodeNFC    bool     `toml:"unicode_nfc"`
}

// Output contains configuration for console progress and duplicate reporting.
type Output struct {
	Progress              string `toml:"progress"`
	DuplicateWarningLimit int    `toml:"duplicate_warning_limit"`
}

// Ledger contains configuration for the optional SQLite run history.
type Ledger struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// RunLogs keeps a JSON log file per run under <state_dir>/logs.
	RunLogs       bool `toml:"run_logs"`
	RetentionDays int  `toml:"retention_days"`
}

// Config encapsulates all configuration values for musiclink.
//
// Configuration sections by subsystem:
//   - Paths: state directory for locks and the ledger
//   - Probe: tag extraction backend, ffprobe binary, failure policy
//   - Library: discovered extensions and destination layout rules
//   - Output: progress rendering and duplicate warning limit
//   - Ledger: optional SQLite history of runs
//   - Logging: log format and level, per-run log files and their retention
type Config struct {
	Paths   Paths   `toml:"paths"`
	Probe   Probe   `toml:"probe"`
	Library Library `toml:"library"`
	Output  Output  `toml:"output"`
	Ledger  Ledger  `toml:"ledger"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/musiclink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. An explicit path that
// does not exist is not an error: defaults apply and exists reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// decodeFile overlays the TOML file at path onto cfg. Unknown keys are
// rejected so typos surface instead of silently falling back to defaults.
func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath picks the explicit path when given. Otherwise the user
// config is preferred over ./musiclink.toml, and the user path is reported
// when neither exists.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		return expanded, exists, err
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("musiclink.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{defaultPath, projectPath} {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat config: %w", err)
	}
}

// EnsureDirectories creates the state directory and, when the ledger is
// enabled, the directory holding the ledger database.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir, c.LockDir()}
	if c.Logging.RunLogs {
		dirs = append(dirs, c.LogDir())
	}
	if c.Ledger.Enabled {
		dirs = append(dirs, filepath.Dir(c.Ledger.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockDir returns the directory holding per-destination run locks.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// LogDir returns the directory holding per-run log files.
func (c *Config) LogDir() string {
	return filepath.Join(c.Paths.StateDir, "logs")
}

// ProbeTimeout returns the per-file probe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Probe.TimeoutSeconds) * time.Second
}

// ExtensionSet returns the discovery extensions as a lookup set.
func (c *Config) ExtensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		set[ext] = struct{}{}
	}
	return set
}

// ExpandPath resolves a leading "~" to the home directory and returns the
// cleaned absolute form of pathValue. An empty value stays empty.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	absolute, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to path, creating parent
// directories. Unless overwrite is set an existing file is left untouched and
// the returned error matches fs.ErrExist.
func WriteSample(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config file already exists at %s: %w", path, err)
		}
		return fmt.Errorf("write sample config: %w", err)
	}
	if _, err := io.WriteString(file, sampleConfig); err != nil {
		file.Close()
		return fmt.Errorf("write sample config: %w", err)
	}
	return file.Close()
}

// Encode writes the configuration as TOML, in the layout Load reads.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}
