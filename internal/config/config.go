// Package config loads the editor configuration from defaults, a TOML file
// and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/hop/internal/core/clipboard"
	"github.com/bethropolis/hop/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Editor    EditorConfig    `toml:"editor"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Theme     ThemeConfig     `toml:"theme"`
	// Plugins holds one table per plugin, keyed by plugin name.
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth  int `toml:"tab_width"`
	ScrollOff int `toml:"scroll_off"`
	// Indent is a mode string like "s4" or "h2"; empty detects from the file.
	Indent string `toml:"indent"`
	// Highlighter is the preferred engine: builtin, chroma, treesitter or none.
	Highlighter  string `toml:"highlighter"`
	HistoryLimit int    `toml:"history_limit"`
	// SyntaxFile replaces the built-in syntax definitions.
	SyntaxFile string `toml:"syntax_file"`
}

// ClipboardConfig selects the clipboard backend.
type ClipboardConfig struct {
	// Internal keeps clipboard data inside the editor.
	Internal bool `toml:"internal"`
	// Programs are tried in order when the native clipboard fails.
	Programs []clipboard.Program `toml:"programs"`
}

// ThemeConfig points at an optional theme file.
type ThemeConfig struct {
	File string `toml:"file"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:     DefaultTabWidth,
			ScrollOff:    DefaultScrollOff,
			Highlighter:  DefaultHighlighter,
			HistoryLimit: DefaultHistoryLimit,
		},
		Plugins: make(map[string]map[string]interface{}),
	}
}

// DefaultPath returns the config file used when no -config flag is given.
func DefaultPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// decodeFile decodes filePath over cfg. A missing file is not an error.
// It returns the keys the file set that Config does not know.
func decodeFile(filePath string, cfg *Config) ([]string, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() []string {
	defaults := NewDefaultConfig()
	var problems []string

	if c.Editor.TabWidth <= 0 {
		problems = append(problems, fmt.Sprintf("tab_width %d must be positive", c.Editor.TabWidth))
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		problems = append(problems, fmt.Sprintf("scroll_off %d must not be negative", c.Editor.ScrollOff))
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.HistoryLimit < 0 {
		problems = append(problems, fmt.Sprintf("history_limit %d must not be negative", c.Editor.HistoryLimit))
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Editor.Indent != "" && !ValidIndent(c.Editor.Indent) {
		problems = append(problems, fmt.Sprintf("indent %q is not a valid mode", c.Editor.Indent))
		c.Editor.Indent = ""
	}
	switch c.Editor.Highlighter {
	case "builtin", "chroma", "treesitter", "none":
	default:
		problems = append(problems, fmt.Sprintf("highlighter %q is not one of builtin, chroma, treesitter, none", c.Editor.Highlighter))
		c.Editor.Highlighter = defaults.Editor.Highlighter
	}
	for i, p := range c.Clipboard.Programs {
		if len(p.Copy) == 0 || len(p.Paste) == 0 {
			problems = append(problems, fmt.Sprintf("clipboard program %d (%s) needs copy and paste commands", i, p.Name))
		}
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	return problems
}

// PluginValue returns key from the named plugin's table.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	v, ok := c.Plugins[plugin][key]
	return v, ok
}

// ValidIndent reports whether mode is "s" or "h" followed by a positive
// width.
func ValidIndent(mode string) bool {
	if len(mode) < 2 || (mode[0] != 's' && mode[0] != 'h') {
		return false
	}
	n, err := strconv.Atoi(mode[1:])
	return err == nil && n > 0
}

// Load builds a config from defaults, the file at path and flags. Problems
// that could be repaired are returned as warnings alongside the config.
func Load(path string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()
	var warnings []string

	if path != "" {
		unknown, err := decodeFile(path, cfg)
		if err != nil {
			return NewDefaultConfig(), nil, err
		}
		if len(unknown) > 0 {
			warnings = append(warnings, fmt.Sprintf("config file '%s': unrecognized keys: %v", path, unknown))
		}
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	warnings = append(warnings, cfg.validate()...)
	return cfg, warnings, nil
}

// LoadConfig loads the process-wide configuration once. The logger is not
// initialized yet when this runs, so warnings are handed back to the caller.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	var warnings []string
	loadOnce.Do(func() {
		path := configFilePath
		if path == "" {
			path = DefaultPath()
		}
		loadedConfig, warnings, loadErr = Load(path, flags)
	})
	return loadedConfig, warnings, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
