// Package main hosts the tunedex CLI entrypoint and command graph.
//
// Running tunedex with no arguments starts the interactive terminal
// interface. Subcommands cover the non-interactive surface: one-shot
// searches, library listings, configuration scaffolding, and environment
// checks. Command wiring stays declarative here; the behavior lives in the
// internal packages.
package main
