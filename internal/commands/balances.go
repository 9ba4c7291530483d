package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
)

func newBalancesCommand(root *rootOptions) *cobra.Command {
	var markdown, pretty bool

	cmd := &cobra.Command{
		Use:   "balances FILE",
		Short: "Show each member's net balance from a ledger file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLedger(args[0])
			if err != nil {
				return err
			}
			f, err := newFormatter(resolveCurrency(root.currency, l.currency))
			if err != nil {
				return err
			}

			t := &table{
				title:  "Balances",
				header: []string{"Member", "Paid", "Owed", "Net"},
			}
			for _, m := range calculator.CalculateMemberTotals(l.members, l.expenses) {
				t.add(l.name(m.MemberID), f.Format(m.TotalPaid), f.Format(m.TotalOwed), f.Signed(m.NetBalance))
			}
			return t.write(cmd.OutOrStdout(), pickFormat(markdown, pretty))
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the Markdown table for the terminal")

	return cmd
}
