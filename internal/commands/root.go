// Package commands implements the splitctl command tree.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/buildinfo"
	"github.com/mmynk/splitledger/pkg/logging"
)

type rootOptions struct {
	currency string
	verbose  bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "splitctl",
		Short:   "Split shared expenses and settle group balances",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			logging.SetupWithLevel(level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.currency, "currency", "", "ISO 4217 currency for amounts (default: ledger file currency, then USD)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newSplitCommand(opts))
	rootCmd.AddCommand(newBalancesCommand(opts))
	rootCmd.AddCommand(newSettleCommand(opts))

	return rootCmd
}
