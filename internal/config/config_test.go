package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withConfigFile points XDG_CONFIG_HOME at a temp dir and writes content as
// the config file. An empty content writes nothing.
func withConfigFile(t *testing.T, content string) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	if content == "" {
		return tempDir
	}
	configDir := filepath.Join(tempDir, "taskboard")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return tempDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Theme.Light.Primary == "" || cfg.Theme.Dark.Primary == "" {
		t.Error("both palettes should have a primary color")
	}
	if !cfg.UX.ConfirmDeletions || !cfg.UX.Animate {
		t.Error("confirm_deletions and animate should default to true")
	}
	if cfg.UX.Locale != "en" {
		t.Errorf("UX.Locale = %q, want en", cfg.UX.Locale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	withConfigFile(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme.Light.Primary != "#7C3AED" {
		t.Errorf("Theme.Light.Primary = %q, want #7C3AED", cfg.Theme.Light.Primary)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	withConfigFile(t, `
data_dir: /custom/data
storage:
  backend: SQLite
theme:
  dark:
    primary: "#FF0000"
    border: "#00FF00"
ux:
  locale: fa
log_level: debug
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", cfg.DataDir)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Theme.Dark.Primary != "#FF0000" || cfg.Theme.Dark.Border != "#00FF00" {
		t.Errorf("Theme.Dark = %+v", cfg.Theme.Dark)
	}
	// Untouched fields keep defaults.
	if cfg.Theme.Dark.Muted != "#9CA3AF" {
		t.Errorf("Theme.Dark.Muted = %q, want #9CA3AF", cfg.Theme.Dark.Muted)
	}
	if cfg.Theme.Light.Primary != "#7C3AED" {
		t.Errorf("Theme.Light.Primary = %q, want #7C3AED", cfg.Theme.Light.Primary)
	}
	if cfg.UX.Locale != "fa" || cfg.LogLevel != "debug" {
		t.Errorf("UX.Locale = %q, LogLevel = %q", cfg.UX.Locale, cfg.LogLevel)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	override := &Config{
		DataDir: "/override/path",
		Theme: ThemeConfig{
			Light: Palette{Primary: "#CUSTOM"},
		},
		Keys: KeysConfig{ToggleTheme: "T"},
	}

	base.mergeNonEmpty(override)

	if base.DataDir != "/override/path" {
		t.Errorf("DataDir = %q, want /override/path", base.DataDir)
	}
	if base.Theme.Light.Primary != "#CUSTOM" {
		t.Errorf("Theme.Light.Primary = %q, want #CUSTOM", base.Theme.Light.Primary)
	}
	if base.Theme.Light.Accent != "#4CAF50" {
		t.Errorf("Theme.Light.Accent = %q, want #4CAF50", base.Theme.Light.Accent)
	}
	if base.Keys.ToggleTheme != "T" {
		t.Errorf("Keys.ToggleTheme = %q, want T", base.Keys.ToggleTheme)
	}
}

func TestLoad_MissingBoolKeysDoesNotClobberDefaults(t *testing.T) {
	withConfigFile(t, `
theme:
  light:
    primary: "#FF0000"
notifications:
  enabled: true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Notifications.Enabled {
		t.Errorf("Notifications.Enabled = %v, want true", cfg.Notifications.Enabled)
	}
	if !cfg.UX.ConfirmDeletions {
		t.Errorf("UX.ConfirmDeletions = %v, want true", cfg.UX.ConfirmDeletions)
	}
	if !cfg.UX.Animate {
		t.Errorf("UX.Animate = %v, want true", cfg.UX.Animate)
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	withConfigFile(t, `
ux:
  confirm_deletions: false
  animate: false
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UX.ConfirmDeletions {
		t.Errorf("UX.ConfirmDeletions = %v, want false", cfg.UX.ConfirmDeletions)
	}
	if cfg.UX.Animate {
		t.Errorf("UX.Animate = %v, want false", cfg.UX.Animate)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "ux: [", "parse config"},
		{"unknown backend", "storage:\n  backend: redis\n", "storage.backend"},
		{"bad log level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfigFile(t, tt.content)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetDataDir(t *testing.T) {
	tests := []struct {
		name    string
		dataDir string
		want    string
	}{
		{
			name:    "empty uses default",
			dataDir: "",
			want:    "",
		},
		{
			name:    "absolute path",
			dataDir: "/custom/path",
			want:    "/custom/path",
		},
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		tests = append(tests,
			struct {
				name    string
				dataDir string
				want    string
			}{
				name:    "tilde expands home",
				dataDir: "~",
				want:    home,
			},
			struct {
				name    string
				dataDir string
				want    string
			}{
				name:    "tilde path expands home",
				dataDir: "~/mydata",
				want:    filepath.Join(home, "mydata"),
			},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DataDir: tt.dataDir}
			got := cfg.GetDataDir()

			if tt.dataDir == "" {
				if filepath.Base(got) != ".taskboard" {
					t.Errorf("GetDataDir() = %q, want to end with .taskboard", got)
				}
			} else if tt.want != "" && got != tt.want {
				t.Errorf("GetDataDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSave(t *testing.T) {
	tempDir := withConfigFile(t, "")

	cfg := Default()
	cfg.DataDir = "/saved/path"
	cfg.Theme.Dark.Primary = "#SAVED"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath := filepath.Join(tempDir, "taskboard", "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.DataDir != "/saved/path" {
		t.Errorf("loaded DataDir = %q, want /saved/path", loaded.DataDir)
	}
	if loaded.Theme.Dark.Primary != "#SAVED" {
		t.Errorf("loaded Theme.Dark.Primary = %q, want #SAVED", loaded.Theme.Dark.Primary)
	}
}
