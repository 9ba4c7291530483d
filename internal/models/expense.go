package models

// SplitMethod describes how an expense's split details were derived.
type SplitMethod string

const (
	SplitMethodEqual      SplitMethod = "equal"
	SplitMethodPercentage SplitMethod = "percentage"
	SplitMethodExact      SplitMethod = "exact"
)

// Valid reports whether m is a known split method.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitMethodEqual, SplitMethodPercentage, SplitMethodExact:
		return true
	}
	return false
}

// Expense is an immutable record of one shared cost.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"groupId,omitempty"`

	// Description and Date are informational and not used for balances.
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`

	// Amount is the positive total cost.
	Amount float64 `json:"amount"`

	// PaidBy is the id of the member who fronted the money.
	PaidBy string `json:"paidBy"`

	// SplitDetails describes how Amount is divided. The shares sum to Amount
	// when rounded to 2 decimal places.
	SplitDetails []SplitDetail `json:"splitDetails"`

	// SplitMethod records how SplitDetails was derived.
	SplitMethod SplitMethod `json:"splitMethod"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// SplitDetail is one participant's share of one expense.
type SplitDetail struct {
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`

	// Percentage is informational and only set for percentage splits.
	Percentage *float64 `json:"percentage,omitempty"`
}
