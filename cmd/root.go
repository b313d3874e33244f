package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/infrastructure/sqlite"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/manager"
	"github.com/zjrosen/tint/internal/override"
	"github.com/zjrosen/tint/internal/theme"
	"github.com/zjrosen/tint/internal/ui/preview"
	"github.com/zjrosen/tint/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFile string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "tint",
	Short:   "A terminal ui for theme and style token management",
	Long:    `Tint resolves style tokens through themes and override layers, previews the result live, and persists customizations across sessions.`,
	Version: version,
	RunE:    runPreview,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/tint/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&debugFile, "debug", "",
		"write debug logs to the given file")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic theme reload when theme files change")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("theme.name", defaults.Theme.Name)
	viper.SetDefault("user_theme_dir", defaults.UserThemeDir)
	viper.SetDefault("overrides_db", defaults.OverridesDB)
	viper.SetDefault("auto_reload", defaults.AutoReload)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .tint/config.yaml (current directory)
		// 2. ~/.config/tint/config.yaml (user config)
		if _, err := os.Stat(".tint/config.yaml"); err == nil {
			viper.SetConfigFile(".tint/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "tint"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at
		// ~/.config/tint/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "tint", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func initLogging() {
	if debugFile == "" {
		return
	}
	if _, err := log.Init(debugFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug logging unavailable: %v\n", err)
	}
}

// configFilePath returns the config file in use, falling back to the
// default location when none was loaded.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tint/config.yaml"
	}
	return filepath.Join(home, ".config", "tint", "config.yaml")
}

// buildManager assembles the full stack from configuration: built-in
// themes, the package and user theme directories, application overrides
// from the config file, and persisted user overrides from the database.
// The returned cleanup closes the database and the manager.
func buildManager() (*manager.Manager, *sqlite.OverrideRepository, func(), error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, nil, err
	}

	dark := lipgloss.HasDarkBackground()
	switch cfg.Theme.Mode {
	case "dark":
		dark = true
	case "light":
		dark = false
	}

	m := manager.New(manager.WithDarkBackground(dark))

	var repo *sqlite.OverrideRepository
	cleanup := m.Close
	if cfg.OverridesDB != "" {
		db, err := sqlite.NewDB(cfg.OverridesDB)
		if err != nil {
			m.Close()
			return nil, nil, nil, fmt.Errorf("opening overrides database: %w", err)
		}
		repo = sqlite.NewOverrideRepository(db)
		cleanup = func() {
			_ = db.Close()
			m.Close()
		}
	}

	m.Batch(func() {
		if err := loadThemeDirs(m); err != nil {
			log.ErrorErr(log.CatTheme, "some theme files failed to load", err)
		}

		if appTokens := cfg.Theme.FlattenedTokens(); len(appTokens) > 0 {
			_, failed := m.SetOverrides(override.LayerApplication, appTokens)
			for _, token := range failed {
				fmt.Fprintf(os.Stderr, "warning: invalid application override for %s ignored\n", token)
			}
		}

		if repo != nil {
			if saved, err := repo.Load(override.LayerUser); err != nil {
				log.ErrorErr(log.CatDB, "loading saved overrides failed", err)
			} else {
				m.RestoreOverrides(override.LayerUser, saved)
			}
		}

		name := cfg.Theme.Name
		if repo != nil {
			if persisted, ok, err := repo.LoadSetting("theme"); err == nil && ok {
				name = persisted
			}
		}
		if name != "" {
			if err := m.SetActiveTheme(name); err != nil {
				fmt.Fprintf(os.Stderr, "warning: theme %q not found, using default\n", name)
			}
		}
	})

	return m, repo, cleanup, nil
}

// loadThemeDirs registers themes from the configured directories.
// Package themes shadow built-ins; user themes shadow both.
func loadThemeDirs(m *manager.Manager) error {
	var firstErr error
	load := func(dir string, source theme.Source) {
		if dir == "" {
			return
		}
		themes, err := theme.LoadDir(dir)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		for _, t := range themes {
			m.RegisterTheme(t, source)
		}
	}
	load(cfg.PackageThemeDir, theme.SourcePackage)
	load(cfg.UserThemeDir, theme.SourceUser)
	return firstErr
}

func runPreview(cmd *cobra.Command, args []string) error {
	m, _, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := preview.New(ctx, m, preview.WithReload(func() error {
		var err error
		m.Batch(func() { err = loadThemeDirs(m) })
		return err
	}))
	p := tea.NewProgram(model, tea.WithAltScreen())

	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}
	if cfg.AutoReload {
		w, err := watcher.New(watcher.DefaultConfig(cfg.PackageThemeDir, cfg.UserThemeDir))
		if err == nil {
			if onChange, startErr := w.Start(); startErr == nil {
				defer func() { _ = w.Stop() }()
				go func() {
					for {
						select {
						case <-ctx.Done():
							return
						case _, ok := <-onChange:
							if !ok {
								return
							}
							p.Send(preview.ThemeFilesChangedMsg{})
						}
					}
				}()
			} else {
				log.Debug(log.CatWatcher, "auto reload disabled", "reason", startErr.Error())
			}
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
