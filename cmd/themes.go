package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tint/internal/config"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List registered themes",
	RunE:  runThemesList,
}

var themesSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Switch the active theme and persist the choice",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemesSet,
}

func init() {
	themesCmd.AddCommand(themesSetCmd)
	rootCmd.AddCommand(themesCmd)
}

func runThemesList(cmd *cobra.Command, args []string) error {
	m, _, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	active := m.ActiveThemeName()
	for _, name := range m.ThemeNames() {
		marker := " "
		if name == active {
			marker = "*"
		}
		source, _ := m.Store().SourceOf(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", marker, name, source)
	}
	for alias, target := range m.Store().Aliases() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-16s alias -> %s\n", alias, target)
	}
	return nil
}

func runThemesSet(cmd *cobra.Command, args []string) error {
	m, repo, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	name := args[0]
	if err := m.SetActiveTheme(name); err != nil {
		return err
	}

	if repo != nil {
		if err := repo.SaveSetting("theme", m.ActiveThemeName()); err != nil {
			return fmt.Errorf("persisting theme selection: %w", err)
		}
	}
	if err := config.SaveTheme(configFilePath(), name); err != nil {
		return fmt.Errorf("updating config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "active theme: %s\n", m.ActiveThemeName())
	return nil
}
