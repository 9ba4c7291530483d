package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
)

func newSettleCommand(root *rootOptions) *cobra.Command {
	var markdown, pretty bool

	cmd := &cobra.Command{
		Use:   "settle FILE",
		Short: "Suggest the payments that settle a ledger file",
		Long: `Suggest the payments that settle a ledger file.

Debts are matched greedily, largest debtor against largest creditor. The
result is small but not guaranteed to be the minimum number of payments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLedger(args[0])
			if err != nil {
				return err
			}
			f, err := newFormatter(resolveCurrency(root.currency, l.currency))
			if err != nil {
				return err
			}

			debts := calculator.SimplifyDebts(calculator.CalculateNetBalances(l.members, l.expenses))
			if len(debts) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "All settled up.")
				return err
			}

			var total float64
			t := &table{
				title:  "Settlements",
				header: []string{"From", "To", "Amount"},
			}
			for _, d := range debts {
				t.add(l.name(d.From), l.name(d.To), f.Format(d.Amount))
				total += d.Amount
			}
			t.footer = fmt.Sprintf("%d payments, %s in total", len(debts), f.Format(calculator.Round2(total)))
			return t.write(cmd.OutOrStdout(), pickFormat(markdown, pretty))
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the Markdown table for the terminal")

	return cmd
}
