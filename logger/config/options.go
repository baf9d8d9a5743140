// Package config describes the bootstrap options a Logger is built from:
// minimum level and where entries are written.
package config

import (
	loglvl "github.com/nabbar/cybercache/logger/level"
)

// Options configures a Logger. It is unmarshaled from the node's
// configuration file (viper, under the "log" key) so every tag variant
// viper supports round-trips through it.
type Options struct {
	Level    string `mapstructure:"level" json:"level" yaml:"level" toml:"level"`
	Stdout   bool   `mapstructure:"stdout" json:"stdout" yaml:"stdout" toml:"stdout"`
	FilePath string `mapstructure:"filePath" json:"filePath" yaml:"filePath" toml:"filePath"`
}

// ParsedLevel returns the configured level, defaulting to InfoLevel when
// Level is empty or unrecognized.
func (o Options) ParsedLevel() loglvl.Level {
	if o.Level == "" {
		return loglvl.InfoLevel
	}
	return loglvl.Parse(o.Level)
}

// Merge overlays n's non-zero fields onto o.
func (o *Options) Merge(n *Options) {
	if n == nil {
		return
	}
	if n.Level != "" {
		o.Level = n.Level
	}
	if n.FilePath != "" {
		o.FilePath = n.FilePath
	}
	o.Stdout = o.Stdout || n.Stdout
}
