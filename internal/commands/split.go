package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

func newSplitCommand(root *rootOptions) *cobra.Command {
	var amount float64
	var method string
	var values map[string]string
	var markdown bool

	cmd := &cobra.Command{
		Use:   "split PARTICIPANT...",
		Short: "Split an amount among participants",
		Long: `Split an amount among participants in the order given.

With the equal method the last participant absorbs the rounding remainder.
Percentage and exact splits take one --value per participant.`,
		Example: `  splitctl split --amount 10 A B C
  splitctl split --amount 90 --method percentage --value A=50 --value B=30 --value C=20 A B C`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := parseValues(values)
			if err != nil {
				return err
			}
			f, err := newFormatter(root.currency)
			if err != nil {
				return err
			}
			return runSplit(cmd, f, amount, args, models.SplitMethod(method), custom, pickFormat(markdown, false))
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "total amount to split (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&method, "method", string(models.SplitMethodEqual), "split method: equal, percentage or exact")
	cmd.Flags().StringToStringVar(&values, "value", nil, "per-participant percentage or amount, as ID=VALUE")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown table")

	return cmd
}

func parseValues(values map[string]string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(values))
	for id, raw := range values {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", id, raw)
		}
		out[id] = v
	}
	return out, nil
}

func runSplit(cmd *cobra.Command, f *formatter, amount float64, participants []string, method models.SplitMethod, custom map[string]float64, format outputFormat) error {
	if err := calculator.ValidateSplitInput(amount, participants, method, custom); err != nil {
		return err
	}

	splits := calculator.CalculateSplits(amount, participants, method, custom)

	t := &table{
		title:  "Split",
		header: []string{"Participant", "Share"},
		footer: "Total: " + f.Format(calculator.SumSplits(splits)),
	}
	if method == models.SplitMethodPercentage {
		t.header = append(t.header, "Percent")
	}
	for _, s := range splits {
		row := []string{s.MemberID, f.Format(s.Amount)}
		if s.Percentage != nil {
			row = append(row, strconv.FormatFloat(*s.Percentage, 'f', -1, 64)+"%")
		}
		t.add(row...)
	}
	return t.write(cmd.OutOrStdout(), format)
}
