package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the recognized style tokens",
	Long: `Tokens prints the token catalog: every recognized token with its
declared type and fallback value. Unknown tokens still resolve - the
catalog is the documented surface, not a whitelist.`,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	m, _, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	for _, e := range m.Catalog().Entries() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-10s %-12s %s\n", e.Token, e.Type, e.Fallback, e.Description)
	}
	return nil
}
