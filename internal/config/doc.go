// Package config loads, normalizes, and validates tunedex configuration.
//
// Configuration lives in a single TOML file, resolved from (in order) an
// explicit --config flag, ~/.config/tunedex/config.toml, or a tunedex.toml in
// the working directory. Missing files are not an error: defaults apply and
// 'tunedex config init' writes a commented sample.
package config
