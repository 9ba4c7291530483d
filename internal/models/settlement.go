package models

// Debt is a suggested payment: From should pay To the given Amount.
// Debts are recommendations derived from balances and are never stored.
type Debt struct {
	// From is the member who owes.
	From string `json:"from"`

	// To is the member who is owed.
	To string `json:"to"`

	// Amount is always positive and rounded to cents.
	Amount float64 `json:"amount"`
}

// BalanceDrift reports a member whose cached balance disagreed with the
// balance recomputed from expenses.
type BalanceDrift struct {
	MemberID string  `json:"memberId"`
	Cached   float64 `json:"cached"`
	Computed float64 `json:"computed"`
}
