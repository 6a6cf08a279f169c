package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProbe(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProbe() error {
	switch c.Probe.Backend {
	case ProbeBackendFFprobe, ProbeBackendNative:
	default:
		return fmt.Errorf("probe.backend: unsupported value %q (want %q or %q)", c.Probe.Backend, ProbeBackendFFprobe, ProbeBackendNative)
	}
	if c.Probe.TimeoutSeconds < 0 {
		return errors.New("probe.timeout_seconds must be positive")
	}
	switch c.Probe.OnFailure {
	case OnFailureSkip, OnFailureAbort:
	default:
		return fmt.Errorf("probe.on_failure: unsupported value %q (want %q or %q)", c.Probe.OnFailure, OnFailureSkip, OnFailureAbort)
	}
	return nil
}

func (c *Config) validateLibrary() error {
	for _, ext := range c.Library.Extensions {
		if strings.ContainsAny(ext, `/\`) || ext == "." {
			return fmt.Errorf("library.extensions: invalid extension %q", ext)
		}
	}
	if strings.Contains(c.Library.UnknownArtist, "/") {
		return errors.New("library.unknown_artist must not contain a path separator")
	}
	switch c.Library.CrossDevice {
	case CrossDeviceFail, CrossDeviceCopy:
	default:
		return fmt.Errorf("library.cross_device: unsupported value %q (want %q or %q)", c.Library.CrossDevice, CrossDeviceFail, CrossDeviceCopy)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Progress {
	case ProgressAuto, ProgressBar, ProgressLog, ProgressOff:
	default:
		return fmt.Errorf("output.progress: unsupported value %q", c.Output.Progress)
	}
	if c.Output.DuplicateWarningLimit < 0 {
		return errors.New("output.duplicate_warning_limit must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or positive")
	}
	return nil
}
