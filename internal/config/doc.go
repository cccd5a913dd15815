// Package config loads editor configuration from a TOML file with
// environment variable overrides. Defaults apply when no file exists.
package config
