// Package main hosts the musiclink CLI entrypoint and command graph.
//
// The root command takes a source and a destination folder and hardlinks
// every tagged audio file from the source into an artist/album layout under
// the destination. Subcommands cover preflight checks, configuration
// scaffolding and the optional run history. Configuration resolution, flag
// overrides and logger setup live here; the pipeline itself is in
// internal/pipeline.
package main
