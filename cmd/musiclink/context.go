package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"musiclink/internal/config"
)

type rootFlags struct {
	config      string
	probe       string
	crossDevice string
	logLevel    string
	ledger      bool
}

type commandContext struct {
	flags *rootFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

// skipConfigLoad marks commands that must run without a loadable config.
const skipConfigLoad = "skipConfigLoad"

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// applyOverrides layers command-line flags over the loaded file.
func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if v := strings.ToLower(strings.TrimSpace(c.flags.probe)); v != "" {
		cfg.Probe.Backend = v
	}
	if v := strings.ToLower(strings.TrimSpace(c.flags.crossDevice)); v != "" {
		cfg.Library.CrossDevice = v
	}
	if v := strings.ToLower(strings.TrimSpace(c.flags.logLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if c.flags.ledger {
		cfg.Ledger.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[skipConfigLoad] == "true" {
			return true
		}
	}
	return false
}
