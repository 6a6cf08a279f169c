// Package config loads, normalizes, and validates musiclink configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MUSICLINK_FFPROBE. The Config type centralizes every knob the CLI and the
// link pipeline need, so probing, layout, and output settings are discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
