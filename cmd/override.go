package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tint/internal/override"
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage persisted user overrides",
}

var overrideSetCmd = &cobra.Command{
	Use:   "set <token> <value>",
	Short: "Set a user override",
	Args:  cobra.ExactArgs(2),
	RunE:  runOverrideSet,
}

var overrideClearCmd = &cobra.Command{
	Use:   "clear <token>",
	Short: "Remove a user override",
	Args:  cobra.ExactArgs(1),
	RunE:  runOverrideClear,
}

var overrideClearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Remove every user override",
	Args:  cobra.NoArgs,
	RunE:  runOverrideClearAll,
}

var overrideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user overrides",
	Args:  cobra.NoArgs,
	RunE:  runOverrideList,
}

func init() {
	overrideCmd.AddCommand(overrideSetCmd, overrideClearCmd, overrideClearAllCmd, overrideListCmd)
	rootCmd.AddCommand(overrideCmd)
}

func runOverrideSet(cmd *cobra.Command, args []string) error {
	m, repo, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	token, value := args[0], args[1]
	if err := m.SetOverride(override.LayerUser, token, value); err != nil {
		return err
	}
	if repo != nil {
		if err := repo.Set(override.LayerUser, token, value); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", token, m.Resolve(token))
	return nil
}

func runOverrideClear(cmd *cobra.Command, args []string) error {
	m, repo, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	token := args[0]
	wasPresent := m.ClearOverride(override.LayerUser, token)
	if repo != nil {
		if err := repo.Delete(override.LayerUser, token); err != nil {
			return err
		}
	}
	if !wasPresent {
		fmt.Fprintf(cmd.OutOrStdout(), "no override for %s\n", token)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s cleared, now %s\n", token, m.Resolve(token))
	return nil
}

func runOverrideClearAll(cmd *cobra.Command, args []string) error {
	m, repo, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	n := m.ClearAllOverrides(override.LayerUser)
	if repo != nil {
		if err := repo.Clear(override.LayerUser); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %d override(s)\n", n)
	return nil
}

func runOverrideList(cmd *cobra.Command, args []string) error {
	m, _, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	snapshot := m.OverrideSnapshot(override.LayerUser)
	tokens := make([]string, 0, len(snapshot))
	for token := range snapshot {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", token, snapshot[token])
	}
	return nil
}
