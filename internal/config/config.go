// Package config loads picker configuration: prompt symbols, behavior
// flags, theme colors, and user-facing messages. The embedded default
// file is the single source of truth for defaults; an optional user
// file is overlaid on top of it. The resolved Config is passed into the
// session and UI at construction, never read from a global afterwards.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// AppConfig is top-level metadata shown in the prompt header.
type AppConfig struct {
	Name string `yaml:"name"`
}

// SymbolsConfig holds the glyphs the renderer draws around candidates.
type SymbolsConfig struct {
	QMark   string `yaml:"qmark"`   // before the message
	Prompt  string `yaml:"prompt"`  // before the query input
	Pointer string `yaml:"pointer"` // before the highlighted row
	Marker  string `yaml:"marker"`  // before enabled rows (multiselect)
}

// BehaviorConfig controls picker behavior.
type BehaviorConfig struct {
	Multiselect bool `yaml:"multiselect"`
	Height      int  `yaml:"height"` // max visible rows; 0 means fill
	Info        bool `yaml:"info"`   // show filtered/total counts after input
	Border      bool `yaml:"border"`
}

// ThemeConfig maps UI elements to lipgloss color values.
type ThemeConfig struct {
	Match   string `yaml:"match"`
	Pointer string `yaml:"pointer"`
	Marker  string `yaml:"marker"`
	Info    string `yaml:"info"`
	Error   string `yaml:"error"`
	Prompt  string `yaml:"prompt"`
	QMark   string `yaml:"qmark"`
	Answer  string `yaml:"answer"`
}

// MessagesConfig holds user-facing strings.
type MessagesConfig struct {
	Invalid string `yaml:"invalid"`
}

// Config is the fully merged picker configuration.
type Config struct {
	App      AppConfig              `yaml:"app"`
	Symbols  SymbolsConfig          `yaml:"symbols"`
	Behavior BehaviorConfig         `yaml:"behavior"`
	Theme    string                 `yaml:"theme"`
	Themes   map[string]ThemeConfig `yaml:"themes"`
	Messages MessagesConfig         `yaml:"messages"`
}

// ActiveTheme resolves the selected theme, falling back to "default".
func (c Config) ActiveTheme() ThemeConfig {
	if t, ok := c.Themes[c.Theme]; ok {
		return t
	}
	return c.Themes["default"]
}

// Default returns the embedded default configuration.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode embedded default config: %w", err)
	}
	return cfg, nil
}

// Load returns the default config with the file at path, if given,
// overlaid on top. Fields absent from the user file keep their
// defaults; a missing or unreadable file is an error so typos in
// --config do not silently fall back.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
