// Package config holds flashdeck's settings: built-in defaults, the optional
// YAML file, and validation. Command-line flags are applied on top by the
// cmd package.
package config
