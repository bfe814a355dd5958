// Package config loads and validates the TOML configuration document.
//
// Load resolves the file from an explicit path, ~/.config/snapflow/config.toml,
// or ./snapflow.toml, merges it over Default(), expands tilde-prefixed paths
// to absolute ones and validates the result. Startup fails on any invalid
// value; nothing downstream re-checks configuration.
package config
