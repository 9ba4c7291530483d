package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

type position struct {
	id     string
	amount decimal.Decimal
}

// SimplifyDebts turns net balances into a short list of payments that brings
// every balance to zero.
//
// Algorithm:
//   - Round balances to cents; anything within a cent of zero is settled
//   - Debtors sorted most negative first, creditors largest first
//   - Repeatedly pay min(debt, credit) from the current largest debtor to the
//     current largest creditor, moving past whoever reaches zero
//
// Equal amounts are ordered by member id so the output is deterministic.
func SimplifyDebts(balances map[string]float64) []models.Debt {
	var debtors, creditors []position
	for id, b := range balances {
		amount := decimal.NewFromFloat(b).Round(2)
		switch {
		case amount.LessThan(cent.Neg()):
			debtors = append(debtors, position{id: id, amount: amount})
		case amount.GreaterThan(cent):
			creditors = append(creditors, position{id: id, amount: amount})
		}
	}

	slices.SortFunc(debtors, func(a, b position) int {
		if c := a.amount.Cmp(b.amount); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	slices.SortFunc(creditors, func(a, b position) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})

	debts := make([]models.Debt, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.amount.Abs(), creditor.amount).Round(2)
		if amount.IsPositive() {
			debts = append(debts, models.Debt{
				From:   debtor.id,
				To:     creditor.id,
				Amount: amount.InexactFloat64(),
			})
		}

		debtor.amount = debtor.amount.Add(amount)
		creditor.amount = creditor.amount.Sub(amount)

		// Both advance when an exact match clears both sides.
		if debtor.amount.Abs().LessThan(cent) {
			i++
		}
		if creditor.amount.LessThan(cent) {
			j++
		}
	}

	return debts
}
