// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a group or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Member balances held by a Store are a cache. Writers pass the balance
// deltas of each expense so the cache moves in the same transaction as the
// expense list; SetMemberBalances overwrites the cache after a full
// recomputation.
type Store interface {
	// CreateGroup persists a new group with its members.
	// The group.ID and CreatedAt fields are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members and full expense history.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups with their members, without expenses.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup renames a group and replaces its member list. Retained
	// members keep their cached balance; expenses are never touched.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group, its members and its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense appends an expense to its group and applies deltas to
	// the cached member balances atomically.
	CreateExpense(ctx context.Context, expense *models.Expense, deltas map[string]float64) error

	// GetExpense retrieves one expense of a group.
	GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses in insertion order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// DeleteExpense removes an expense and applies deltas to the cached
	// member balances atomically.
	DeleteExpense(ctx context.Context, groupID, expenseID string, deltas map[string]float64) error

	// SetMemberBalances overwrites cached balances for the listed members.
	SetMemberBalances(ctx context.Context, groupID string, balances map[string]float64) error

	// Close releases any resources held by the store.
	Close() error
}
