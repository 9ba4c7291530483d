package calculator

import "github.com/mmynk/splitledger/internal/models"

// SettlementDescription labels expenses recorded from confirmed debts.
const SettlementDescription = "Settlement"

// SettlementExpense converts a confirmed debt into the expense that records
// it: the debtor pays, and the creditor carries the whole amount as an exact
// share. Feeding it through CalculateNetBalances cancels the debt for both
// parties.
func SettlementExpense(debt models.Debt) models.Expense {
	amount := Round2(debt.Amount)
	return models.Expense{
		Description: SettlementDescription,
		Amount:      amount,
		PaidBy:      debt.From,
		SplitDetails: CalculateSplits(amount, []string{debt.To}, models.SplitMethodExact,
			map[string]float64{debt.To: amount}),
		SplitMethod: models.SplitMethodExact,
	}
}
