// Package config handles configuration loading and defaults for taskboard.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/taskboard/config.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskboard/internal/fsutil"
	"taskboard/internal/kvstore"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.taskboard)
	DataDir string `yaml:"data_dir,omitempty"`

	// Storage selects the key-value backend
	Storage StorageConfig `yaml:"storage,omitempty"`

	// Theme customizes the light and dark palettes
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty"`
}

// StorageConfig selects where dashboard state lives.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "sqlite"
	Backend string `yaml:"backend,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled mirrors toasts as desktop notifications
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`
}

// ThemeConfig holds one palette per theme.
type ThemeConfig struct {
	Light Palette `yaml:"light,omitempty"`
	Dark  Palette `yaml:"dark,omitempty"`
}

// Palette defines color settings for one theme. Empty Background or Text
// means the terminal default.
type Palette struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`

	// Border color for panes and chart bars (hex)
	Border string `yaml:"border,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit        string `yaml:"quit,omitempty"`         // default: "q,ctrl+c"
	Help        string `yaml:"help,omitempty"`         // default: "?"
	NextPane    string `yaml:"next_pane,omitempty"`    // default: "tab"
	ToggleTheme string `yaml:"toggle_theme,omitempty"` // default: "t"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g,home"
	Bottom string `yaml:"bottom,omitempty"` // default: "G,end"

	// Task keys
	AddTask    string `yaml:"add_task,omitempty"`    // default: "a"
	ToggleTask string `yaml:"toggle_task,omitempty"` // default: "space,d"
	DeleteTask string `yaml:"delete_task,omitempty"` // default: "x"

	// Chart keys
	PrevSlice string `yaml:"prev_slice,omitempty"` // default: "left,h"
	NextSlice string `yaml:"next_slice,omitempty"` // default: "right,l"
	OpenSlice string `yaml:"open_slice,omitempty"` // default: "enter"

	// Counters and toasts
	EditCounters string `yaml:"edit_counters,omitempty"` // default: "e"
	DismissToast string `yaml:"dismiss_toast,omitempty"` // default: "ctrl+x"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"

	// Undo/Redo keys
	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting tasks
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80

	// Locale selects label text: "en" or "fa"
	Locale string `yaml:"locale,omitempty"` // default: "en"

	// Animate enables the stat card count-up
	Animate bool `yaml:"animate,omitempty"` // default: true
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Backend: kvstore.BackendFile,
		},
		Theme: ThemeConfig{
			Light: Palette{
				Primary: "#7C3AED", // Violet
				Accent:  "#4CAF50", // Green
				Muted:   "#6B7280", // Gray
				Text:    "#333333",
				Border:  "#D1D5DB",
			},
			Dark: Palette{
				Primary:    "#A78BFA",
				Accent:     "#4CAF50",
				Muted:      "#9CA3AF",
				Background: "#121212",
				Text:       "#E0E0E0",
				Border:     "#3A3A3A",
			},
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 80,
			Locale:                "en",
			Animate:               true,
		},
		Notifications: NotificationConfig{
			Enabled: false,
			Sound:   false,
		},
		LogLevel: "warn",
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".taskboard")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskboard")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "taskboard")
}

// Path returns the path to the config file.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from the default path, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads configuration from path, merging with defaults. An empty
// path or a missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that would fail later in less obvious ways.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case kvstore.BackendFile, kvstore.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend %q: want file or sqlite", c.Storage.Backend)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (p *Palette) mergeNonEmpty(other Palette) {
	setIf(&p.Primary, other.Primary)
	setIf(&p.Accent, other.Accent)
	setIf(&p.Muted, other.Muted)
	setIf(&p.Background, other.Background)
	setIf(&p.Text, other.Text)
	setIf(&p.Border, other.Border)
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	setIf(&c.DataDir, other.DataDir)
	setIf(&c.Storage.Backend, strings.ToLower(strings.TrimSpace(other.Storage.Backend)))
	setIf(&c.LogLevel, other.LogLevel)

	c.Theme.Light.mergeNonEmpty(other.Theme.Light)
	c.Theme.Dark.mergeNonEmpty(other.Theme.Dark)

	k, o := &c.Keys, other.Keys
	setIf(&k.Quit, o.Quit)
	setIf(&k.Help, o.Help)
	setIf(&k.NextPane, o.NextPane)
	setIf(&k.ToggleTheme, o.ToggleTheme)
	setIf(&k.Up, o.Up)
	setIf(&k.Down, o.Down)
	setIf(&k.Top, o.Top)
	setIf(&k.Bottom, o.Bottom)
	setIf(&k.AddTask, o.AddTask)
	setIf(&k.ToggleTask, o.ToggleTask)
	setIf(&k.DeleteTask, o.DeleteTask)
	setIf(&k.PrevSlice, o.PrevSlice)
	setIf(&k.NextSlice, o.NextSlice)
	setIf(&k.OpenSlice, o.OpenSlice)
	setIf(&k.EditCounters, o.EditCounters)
	setIf(&k.DismissToast, o.DismissToast)
	setIf(&k.Confirm, o.Confirm)
	setIf(&k.Cancel, o.Cancel)
	setIf(&k.Undo, o.Undo)
	setIf(&k.Redo, o.Redo)

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
	setIf(&c.UX.Locale, other.UX.Locale)
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a node tree there is no way to tell "false" from "absent";
	// keep the default booleans.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "animate") {
		c.UX.Animate = other.UX.Animate
	}
	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			trimmed := strings.TrimPrefix(c.DataDir, "~/")
			trimmed = strings.TrimPrefix(trimmed, `~\`)
			return filepath.Join(home, trimmed)
		}
	}
	return c.DataDir
}
