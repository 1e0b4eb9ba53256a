// Package config loads editor settings from a TOML file and watches the
// file for changes so a running editor can pick up edits without a
// restart. A missing settings file is not an error; defaults apply.
package config
