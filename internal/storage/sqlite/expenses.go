package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateExpense persists a new expense with its split details and applies
// the balance deltas to the group's cached member balances.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, deltas map[string]float64) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", expense.GroupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, date, amount, paid_by, split_method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Date, expense.Amount,
		expense.PaidBy, string(expense.SplitMethod), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, d := range expense.SplitDetails {
		var pct any
		if d.Percentage != nil {
			pct = *d.Percentage
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO split_details (expense_id, member_id, amount, percentage, position) VALUES (?, ?, ?, ?, ?)",
			expense.ID, d.MemberID, d.Amount, pct, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split detail: %w", err)
		}
	}

	if err := applyDeltas(ctx, tx, expense.GroupID, deltas); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID within a group.
func (s *SQLiteStore) GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var method string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, date, amount, paid_by, split_method, created_at
		 FROM expenses WHERE id = ? AND group_id = ?`,
		expenseID, groupID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Date, &expense.Amount,
		&expense.PaidBy, &method, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.SplitMethod = models.SplitMethod(method)

	details, err := listSplitDetails(ctx, s.db,
		"SELECT expense_id, member_id, amount, percentage FROM split_details WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	expense.SplitDetails = details[expenseID]

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group in insertion order.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check group existence: %w", err)
	}
	return listExpenses(ctx, s.db, groupID)
}

// DeleteExpense removes an expense and applies the balance deltas.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string, deltas map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND group_id = ?", expenseID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	if err := applyDeltas(ctx, tx, groupID, deltas); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// applyDeltas moves cached balances. Ids that are no longer members of the
// group have no cache row and are skipped.
func applyDeltas(ctx context.Context, tx *sql.Tx, groupID string, deltas map[string]float64) error {
	for memberID, delta := range deltas {
		_, err := tx.ExecContext(ctx,
			"UPDATE members SET balance = balance + ? WHERE group_id = ? AND id = ?",
			delta, groupID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to update member balance: %w", err)
		}
	}
	return nil
}

func listExpenses(ctx context.Context, q querier, groupID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, group_id, description, date, amount, paid_by, split_method, created_at
		 FROM expenses WHERE group_id = ? ORDER BY rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var method string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Description, &e.Date, &e.Amount,
			&e.PaidBy, &method, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.SplitMethod = models.SplitMethod(method)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	details, err := listSplitDetails(ctx, q,
		`SELECT sd.expense_id, sd.member_id, sd.amount, sd.percentage
		 FROM split_details sd JOIN expenses e ON e.id = sd.expense_id
		 WHERE e.group_id = ? ORDER BY sd.expense_id, sd.position`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].SplitDetails = details[expenses[i].ID]
	}

	return expenses, nil
}

// listSplitDetails runs query and groups the resulting split details by expense id.
func listSplitDetails(ctx context.Context, q querier, query string, args ...any) (map[string][]models.SplitDetail, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get split details: %w", err)
	}
	defer rows.Close()

	details := make(map[string][]models.SplitDetail)
	for rows.Next() {
		var expenseID string
		var d models.SplitDetail
		var pct sql.NullFloat64
		if err := rows.Scan(&expenseID, &d.MemberID, &d.Amount, &pct); err != nil {
			return nil, fmt.Errorf("failed to scan split detail: %w", err)
		}
		if pct.Valid {
			p := pct.Float64
			d.Percentage = &p
		}
		details[expenseID] = append(details[expenseID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split details: %w", err)
	}
	return details, nil
}
