// Package api defines the request and response messages of the splitledger
// RPC services. Messages are plain structs carried as JSON.
package api

// Member is a participant of a group. Balance is the cached net balance.
type Member struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// SplitDetail is one participant's share of an expense.
type SplitDetail struct {
	MemberID   string   `json:"memberId"`
	Amount     float64  `json:"amount"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Expense is a recorded shared cost, or a settlement.
type Expense struct {
	ID           string        `json:"id"`
	GroupID      string        `json:"groupId"`
	Description  string        `json:"description"`
	Date         string        `json:"date,omitempty"`
	Amount       float64       `json:"amount"`
	PaidBy       string        `json:"paidBy"`
	SplitDetails []SplitDetail `json:"splitDetails"`
	SplitMethod  string        `json:"splitMethod"`
	CreatedAt    int64         `json:"createdAt"`
}

// Group owns its members and expenses.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []Member  `json:"members"`
	Expenses  []Expense `json:"expenses,omitempty"`
	CreatedAt int64     `json:"createdAt"`
}

// Debt is a suggested payment: From pays To the Amount.
type Debt struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// MemberBalance combines a member's cached balance with totals computed
// from the expense history.
type MemberBalance struct {
	MemberID   string  `json:"memberId"`
	Name       string  `json:"name,omitempty"`
	Cached     float64 `json:"cached"`
	TotalPaid  float64 `json:"totalPaid"`
	TotalOwed  float64 `json:"totalOwed"`
	NetBalance float64 `json:"netBalance"`
}

// BalanceDrift reports a member whose cached balance disagreed with the
// recomputed one.
type BalanceDrift struct {
	MemberID string  `json:"memberId"`
	Cached   float64 `json:"cached"`
	Computed float64 `json:"computed"`
}

// Group service messages.

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string   `json:"groupId"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

// Ledger service messages.

// PreviewSplitRequest asks for a split without recording anything.
// CustomValues holds percentages for the percentage method and amounts for
// the exact method.
type PreviewSplitRequest struct {
	Amount         float64            `json:"amount"`
	ParticipantIDs []string           `json:"participantIds"`
	SplitMethod    string             `json:"splitMethod"`
	CustomValues   map[string]float64 `json:"customValues,omitempty"`
}

type PreviewSplitResponse struct {
	SplitDetails []SplitDetail `json:"splitDetails"`
	Total        float64       `json:"total"`
}

type AddExpenseRequest struct {
	GroupID        string             `json:"groupId"`
	Description    string             `json:"description"`
	Date           string             `json:"date,omitempty"`
	Amount         float64            `json:"amount"`
	PaidBy         string             `json:"paidBy"`
	ParticipantIDs []string           `json:"participantIds"`
	SplitMethod    string             `json:"splitMethod"`
	CustomValues   map[string]float64 `json:"customValues,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
	Members []Member `json:"members"`
}

type RemoveExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct {
	Members []Member `json:"members"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type SettleDebtRequest struct {
	GroupID string  `json:"groupId"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date,omitempty"`
}

type SettleDebtResponse struct {
	Expense *Expense `json:"expense"`
	Members []Member `json:"members"`
}

type GetBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
}

type SuggestSettlementsRequest struct {
	GroupID string `json:"groupId"`
}

type SuggestSettlementsResponse struct {
	Debts []Debt  `json:"debts"`
	Total float64 `json:"total"`
}

type ReconcileRequest struct {
	GroupID string `json:"groupId"`
}

type ReconcileResponse struct {
	Drifts  []BalanceDrift `json:"drifts"`
	Members []Member       `json:"members"`
}
