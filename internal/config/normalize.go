package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProbe()
	c.normalizeLibrary()
	c.normalizeOutput()
	if err := c.normalizeLedger(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = ExpandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProbe() {
	c.Probe.Backend = strings.ToLower(strings.TrimSpace(c.Probe.Backend))
	if c.Probe.Backend == "" {
		c.Probe.Backend = defaultProbeBackend
	}
	if value, ok := os.LookupEnv("MUSICLINK_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Probe.FFprobeBinary = value
	}
	c.Probe.FFprobeBinary = strings.TrimSpace(c.Probe.FFprobeBinary)
	if c.Probe.FFprobeBinary == "" {
		c.Probe.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Probe.TimeoutSeconds == 0 {
		c.Probe.TimeoutSeconds = defaultProbeTimeoutSeconds
	}
	c.Probe.OnFailure = strings.ToLower(strings.TrimSpace(c.Probe.OnFailure))
	if c.Probe.OnFailure == "" {
		c.Probe.OnFailure = defaultProbeOnFailure
	}
}

func (c *Config) normalizeLibrary() {
	exts := make([]string, 0, len(c.Library.Extensions))
	seen := make(map[string]struct{}, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Library.Extensions = exts

	c.Library.UnknownArtist = strings.TrimSpace(c.Library.UnknownArtist)
	if c.Library.UnknownArtist == "" {
		c.Library.UnknownArtist = defaultUnknownArtist
	}
	c.Library.CrossDevice = strings.ToLower(strings.TrimSpace(c.Library.CrossDevice))
	if c.Library.CrossDevice == "" {
		c.Library.CrossDevice = defaultCrossDevice
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Progress = strings.ToLower(strings.TrimSpace(c.Output.Progress))
	if c.Output.Progress == "" {
		c.Output.Progress = defaultProgress
	}
}

func (c *Config) normalizeLedger() error {
	c.Ledger.Path = strings.TrimSpace(c.Ledger.Path)
	if c.Ledger.Path == "" {
		c.Ledger.Path = filepath.Join(c.Paths.StateDir, defaultLedgerFile)
		return nil
	}
	var err error
	if c.Ledger.Path, err = ExpandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
