package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <token>...",
	Short: "Resolve tokens to their effective values",
	Long: `Resolve walks each token through the lookup chain - user overrides,
application overrides, the active theme, catalog fallbacks, and
heuristic defaults - and prints the effective value.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("type", "", "force a token type: color, font, size, structure, opaque")
	resolveCmd.Flags().String("fallback", "", "value to use when nothing else resolves")
	resolveCmd.Flags().Bool("no-overrides", false, "resolve against the base theme, skipping override layers")
	resolveCmd.Flags().Bool("explain", false, "show which chain step supplied each value")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	m, _, cleanup, err := buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	var opts []resolve.Option
	if typ, _ := cmd.Flags().GetString("type"); typ != "" {
		switch catalog.Type(typ) {
		case catalog.TypeColor, catalog.TypeFont, catalog.TypeSize, catalog.TypeStructure, catalog.TypeOpaque:
			opts = append(opts, resolve.WithType(catalog.Type(typ)))
		default:
			return fmt.Errorf("unknown token type %q", typ)
		}
	}
	if fallback, _ := cmd.Flags().GetString("fallback"); cmd.Flags().Changed("fallback") {
		opts = append(opts, resolve.WithFallback(fallback))
	}
	if noOverrides, _ := cmd.Flags().GetBool("no-overrides"); noOverrides {
		opts = append(opts, resolve.WithoutOverrides())
	}
	explain, _ := cmd.Flags().GetBool("explain")

	for _, token := range args {
		res := m.Lookup(token, opts...)
		if explain {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %q  (%s, %s)\n", token, res.Value, res.Origin, res.Type)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Value)
	}
	return nil
}
