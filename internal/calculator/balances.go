package calculator

import (
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// MemberTotals is the balance breakdown for one member.
type MemberTotals struct {
	MemberID   string
	TotalPaid  float64 // Sum of expenses this member paid for
	TotalOwed  float64 // Sum of this member's shares
	NetBalance float64 // Positive = owed money, Negative = owes money
}

// ApplyExpense adds an expense's effect to balances: the payer is credited
// the full amount and every participant is debited their share. A sign of -1
// reverses a previously applied expense. Ids missing from balances get an
// entry, so expenses that reference former members still count.
func ApplyExpense(balances map[string]float64, e models.Expense, sign float64) {
	balances[e.PaidBy] += sign * e.Amount
	for _, d := range e.SplitDetails {
		balances[d.MemberID] -= sign * d.Amount
	}
}

// ExpenseDeltas returns the balance changes an expense causes.
func ExpenseDeltas(e models.Expense) map[string]float64 {
	deltas := make(map[string]float64, len(e.SplitDetails)+1)
	ApplyExpense(deltas, e, 1)
	return deltas
}

// CalculateNetBalances replays every expense and returns each member's net
// balance. Members with no activity are present with a zero balance. No
// rounding is applied; SimplifyDebts absorbs floating-point residue.
func CalculateNetBalances(members []models.Member, expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}
	for _, e := range expenses {
		ApplyExpense(balances, e, 1)
	}
	return balances
}

// CalculateMemberTotals aggregates paid and owed totals per member. Results
// follow the member order; ids that only appear in expenses come after,
// sorted by id.
func CalculateMemberTotals(members []models.Member, expenses []models.Expense) []MemberTotals {
	totals := make(map[string]*MemberTotals, len(members))
	order := make([]string, 0, len(members))
	get := func(id string) *MemberTotals {
		t, ok := totals[id]
		if !ok {
			t = &MemberTotals{MemberID: id}
			totals[id] = t
		}
		return t
	}

	for _, m := range members {
		if _, ok := totals[m.ID]; ok {
			continue
		}
		get(m.ID)
		order = append(order, m.ID)
	}
	for _, e := range expenses {
		get(e.PaidBy).TotalPaid += e.Amount
		for _, d := range e.SplitDetails {
			get(d.MemberID).TotalOwed += d.Amount
		}
	}

	extra := make([]string, 0, len(totals)-len(order))
	for id := range totals {
		if !slices.Contains(order, id) {
			extra = append(extra, id)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	result := make([]MemberTotals, len(order))
	for i, id := range order {
		t := totals[id]
		t.NetBalance = t.TotalPaid - t.TotalOwed
		result[i] = *t
	}
	return result
}
