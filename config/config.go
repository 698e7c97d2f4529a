// Package config loads parser defaults from a YAML file: the tag
// ignore-list, a base IMPORT variable scope for EXT-X-DEFINE, and the
// logger verbosity a host binary should configure.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
)

// Config is the on-disk shape of a parser defaults file.
type Config struct {
	// IgnoreTags lists tag keys the dispatcher skips without processing,
	// with an "ignoring tag" warning instead of an unsupported-tag one.
	IgnoreTags []string `yaml:"ignoreTags"`

	// BaseImport seeds the IMPORT variable scope an EXT-X-DEFINE
	// IMPORT attribute draws from, when the playlist being parsed is
	// itself an imported sub-playlist of some parent context.
	BaseImport map[string]string `yaml:"baseImport"`

	// LogLevel is one of "debug", "info", "warn", "error"; empty
	// defaults to "info".
	LogLevel string `yaml:"logLevel"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// IgnoreTagSet converts IgnoreTags into the set shape registry.Hooks
// expects.
func (c *Config) IgnoreTagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.IgnoreTags))
	for _, tag := range c.IgnoreTags {
		set[tag] = struct{}{}
	}
	return set
}

// BaseDefine converts BaseImport into a playlist.Define seeded with an
// IMPORT scope, suitable for ParseOptions.BaseDefine.
func (c *Config) BaseDefine() *playlist.Define {
	define := &playlist.Define{
		Name:       make(map[string]string),
		Import:     make(map[string]string, len(c.BaseImport)),
		QueryParam: make(map[string]string),
	}
	for k, v := range c.BaseImport {
		define.Import[k] = v
	}
	return define
}
