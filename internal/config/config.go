// Package config provides configuration types and defaults for tint.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/theme"
)

// ThemeConfig holds theme selection and application-level overrides.
type ThemeConfig struct {
	// Name selects the active theme. May be a registered name or an
	// alias like "default".
	Name string `mapstructure:"name"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Tokens holds application-layer overrides applied at startup.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   tokens:
	//     editor:
	//       background: "#1e1e2e"
	// Or quoted dot notation:
	//   tokens:
	//     "editor.background": "#1e1e2e"
	Tokens map[string]any `mapstructure:"tokens"`
}

// FlattenedTokens returns the Tokens map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedTokens() map[string]string {
	result := make(map[string]string)
	theme.Flatten("", t.Tokens, result)
	return result
}

// Config holds all configuration options for tint.
type Config struct {
	Theme ThemeConfig `mapstructure:"theme"`

	// PackageThemeDir holds application-bundled theme files.
	PackageThemeDir string `mapstructure:"package_theme_dir"`

	// UserThemeDir holds the end user's theme files. These shadow
	// package themes of the same name.
	UserThemeDir string `mapstructure:"user_theme_dir"`

	// OverridesDB is the SQLite file persisting user overrides.
	OverridesDB string `mapstructure:"overrides_db"`

	// AutoReload re-loads themes when files in the theme directories
	// change.
	AutoReload bool `mapstructure:"auto_reload"`
}

// DefaultUserThemeDir returns ~/.config/tint/themes, or empty string if
// the home dir is unavailable.
func DefaultUserThemeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tint", "themes")
}

// DefaultOverridesDBPath returns ~/.config/tint/overrides.db, or empty
// string if the home dir is unavailable.
func DefaultOverridesDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tint", "overrides.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme: ThemeConfig{
			Name: "default",
		},
		UserThemeDir: DefaultUserThemeDir(),
		OverridesDB:  DefaultOverridesDBPath(),
		AutoReload:   true,
	}
}

// Validate checks the configuration for errors. Empty values fall back
// to defaults and are always valid.
func Validate(cfg Config) error {
	switch cfg.Theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\", or empty, got %q", cfg.Theme.Mode)
	}
	if cfg.PackageThemeDir != "" && !filepath.IsAbs(cfg.PackageThemeDir) {
		return fmt.Errorf("package_theme_dir must be an absolute path, got %q", cfg.PackageThemeDir)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Tint Configuration

# Theme selection
theme:
  # Active theme; run 'tint themes' to see what is registered.
  #
  # Bundled themes:
  #   slate-dark     - Default dark theme
  #   slate-light    - Light counterpart
  #   dracula        - Dark theme with vibrant colors
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast for accessibility
  name: default

  # Force light or dark mode. Empty uses terminal detection.
  # mode: dark

  # Application-layer overrides applied at startup.
  # Nested and quoted dot notation both work:
  # tokens:
  #   editor:
  #     background: "#1e1e2e"
  #   "status.error": "#ff0000"

# Extra theme directories. User themes shadow package themes of the
# same name; both shadow the bundled ones.
# package_theme_dir: /usr/share/myapp/themes
# user_theme_dir: ~/.config/tint/themes

# SQLite file persisting user overrides across sessions.
# overrides_db: ~/.config/tint/overrides.db

# Reload themes automatically when files in the theme directories change.
auto_reload: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
