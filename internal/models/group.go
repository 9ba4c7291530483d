package models

// Group is a set of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string `json:"name"`

	// Members is the current member list. Members removed from the group may
	// still be referenced by older expenses.
	Members []Member `json:"members"`

	// Expenses is the full expense history in insertion order.
	Expenses []Expense `json:"expenses,omitempty"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// Member is a participant in a group.
type Member struct {
	// ID is stable and unique within the group.
	ID string `json:"id"`

	// Name is a display label only.
	Name string `json:"name"`

	// Balance is the cached net balance. It is derived from the group's
	// expenses and must never be treated as a source of truth.
	Balance float64 `json:"balance"`
}

// HasMember reports whether id is a current member of the group.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}
