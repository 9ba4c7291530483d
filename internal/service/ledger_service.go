package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// driftTolerance is the largest difference between a cached and a
// recomputed balance that reconciliation leaves alone.
const driftTolerance = 0.005

var (
	errSelfSettlement = errors.New("cannot settle a debt with oneself")
	errNotMember      = errors.New("not a member of the group")
)

// Ensure LedgerService implements the Connect handler interface
var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService owns a group's expense history and cached balances. Commands
// hold the group's lock so the cache moves one expense at a time; queries
// that matter for money movement always recompute from expenses.
type LedgerService struct {
	store   storage.Store
	locks   *GroupLocks
	metrics *metrics.Metrics
}

// NewLedgerService creates a LedgerService. m may be nil.
func NewLedgerService(store storage.Store, locks *GroupLocks, m *metrics.Metrics) *LedgerService {
	return &LedgerService{store: store, locks: locks, metrics: m}
}

// splitMethod defaults an empty method to an equal split.
func splitMethod(method string) models.SplitMethod {
	if method == "" {
		return models.SplitMethodEqual
	}
	return models.SplitMethod(method)
}

// applyDeltas mirrors a store write onto an in-memory member list.
func applyDeltas(members []models.Member, deltas map[string]float64) {
	for i := range members {
		members[i].Balance += deltas[members[i].ID]
	}
}

// PreviewSplit calculates a split without recording anything.
func (s *LedgerService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	method := splitMethod(req.Msg.SplitMethod)
	slog.Debug("PreviewSplit request received",
		"amount", req.Msg.Amount,
		"participants", len(req.Msg.ParticipantIDs),
		"split_method", method,
	)

	if err := calculator.ValidateSplitInput(req.Msg.Amount, req.Msg.ParticipantIDs, method, req.Msg.CustomValues); err != nil {
		return nil, invalidArgument(err)
	}

	splits := calculator.CalculateSplits(req.Msg.Amount, req.Msg.ParticipantIDs, method, req.Msg.CustomValues)

	return connect.NewResponse(&api.PreviewSplitResponse{
		SplitDetails: toAPISplitDetails(splits),
		Total:        calculator.SumSplits(splits),
	}), nil
}

// AddExpense splits an expense among current members, records it and moves
// the cached balances by the expense's deltas.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	msg := req.Msg
	method := splitMethod(msg.SplitMethod)
	slog.Info("AddExpense request received",
		"group_id", msg.GroupID,
		"amount", msg.Amount,
		"paid_by", msg.PaidBy,
		"participants", len(msg.ParticipantIDs),
		"split_method", method,
	)

	if msg.GroupID == "" {
		return nil, invalidArgument(errGroupIDRequired)
	}
	if msg.PaidBy == "" {
		return nil, invalidArgument(calculator.ErrMissingPayer)
	}
	if err := calculator.ValidateSplitInput(msg.Amount, msg.ParticipantIDs, method, msg.CustomValues); err != nil {
		return nil, invalidArgument(err)
	}

	defer s.locks.Lock(msg.GroupID)()

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		slog.Error("AddExpense failed - group lookup", "group_id", msg.GroupID, "error", err)
		return nil, storeError(err)
	}
	for _, id := range append([]string{msg.PaidBy}, msg.ParticipantIDs...) {
		if !group.HasMember(id) {
			return nil, invalidArgument(fmt.Errorf("%q: %w", id, errNotMember))
		}
	}

	expense := models.Expense{
		GroupID:      msg.GroupID,
		Description:  msg.Description,
		Date:         msg.Date,
		Amount:       calculator.Round2(msg.Amount),
		PaidBy:       msg.PaidBy,
		SplitDetails: calculator.CalculateSplits(msg.Amount, msg.ParticipantIDs, method, msg.CustomValues),
		SplitMethod:  method,
	}
	if err := calculator.ValidateExpense(expense); err != nil {
		return nil, invalidArgument(err)
	}

	deltas := calculator.ExpenseDeltas(expense)
	if err := s.store.CreateExpense(ctx, &expense, deltas); err != nil {
		slog.Error("AddExpense failed", "group_id", msg.GroupID, "error", err)
		return nil, storeError(err)
	}
	applyDeltas(group.Members, deltas)
	s.metrics.ExpenseRecorded(string(method), "expense")

	slog.Info("Expense added",
		"group_id", msg.GroupID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
	)

	return connect.NewResponse(&api.AddExpenseResponse{
		Expense: toAPIExpense(&expense),
		Members: toAPIMembers(group.Members),
	}), nil
}

// RemoveExpense deletes an expense and reverses its effect on the cached
// balances.
func (s *LedgerService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	slog.Info("RemoveExpense request received",
		"group_id", req.Msg.GroupID,
		"expense_id", req.Msg.ExpenseID,
	)

	defer s.locks.Lock(req.Msg.GroupID)()

	expense, err := s.store.GetExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("RemoveExpense failed - expense lookup", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	deltas := make(map[string]float64, len(expense.SplitDetails)+1)
	calculator.ApplyExpense(deltas, *expense, -1)
	if err := s.store.DeleteExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID, deltas); err != nil {
		slog.Error("RemoveExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.ExpenseRemoved()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storeError(err)
	}

	slog.Info("Expense removed", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.RemoveExpenseResponse{Members: toAPIMembers(group.Members)}), nil
}

// ListExpenses returns a group's expense history in insertion order.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// SettleDebt records a confirmed debt as a settlement expense. Former
// members that still appear in the history can settle too.
func (s *LedgerService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	msg := req.Msg
	slog.Info("SettleDebt request received",
		"group_id", msg.GroupID,
		"from", msg.From,
		"to", msg.To,
		"amount", msg.Amount,
	)

	if msg.GroupID == "" {
		return nil, invalidArgument(errGroupIDRequired)
	}
	if msg.From == "" || msg.To == "" {
		return nil, invalidArgument(calculator.ErrMissingPayer)
	}
	if msg.From == msg.To {
		return nil, invalidArgument(errSelfSettlement)
	}
	if err := calculator.ValidateAmount(msg.Amount); err != nil {
		return nil, invalidArgument(err)
	}
	if calculator.Round2(msg.Amount) <= 0 {
		return nil, invalidArgument(calculator.ErrNonPositiveAmount)
	}

	defer s.locks.Lock(msg.GroupID)()

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		slog.Error("SettleDebt failed - group lookup", "group_id", msg.GroupID, "error", err)
		return nil, storeError(err)
	}
	known := calculator.CalculateNetBalances(group.Members, group.Expenses)
	for _, id := range []string{msg.From, msg.To} {
		if _, ok := known[id]; !ok {
			return nil, invalidArgument(fmt.Errorf("%q: %w", id, errNotMember))
		}
	}

	expense := calculator.SettlementExpense(models.Debt{From: msg.From, To: msg.To, Amount: msg.Amount})
	expense.GroupID = msg.GroupID
	expense.Date = msg.Date

	deltas := calculator.ExpenseDeltas(expense)
	if err := s.store.CreateExpense(ctx, &expense, deltas); err != nil {
		slog.Error("SettleDebt failed", "group_id", msg.GroupID, "error", err)
		return nil, storeError(err)
	}
	applyDeltas(group.Members, deltas)
	s.metrics.ExpenseRecorded(string(expense.SplitMethod), "settlement")

	slog.Info("Debt settled",
		"group_id", msg.GroupID,
		"expense_id", expense.ID,
		"from", msg.From,
		"to", msg.To,
		"amount", expense.Amount,
	)

	return connect.NewResponse(&api.SettleDebtResponse{
		Expense: toAPIExpense(&expense),
		Members: toAPIMembers(group.Members),
	}), nil
}

// GetBalances reports each member's cached balance next to totals computed
// from the expense history. Ids that only appear in old expenses are listed
// after the current members.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetBalances failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	byID := make(map[string]models.Member, len(group.Members))
	for _, m := range group.Members {
		byID[m.ID] = m
	}

	totals := calculator.CalculateMemberTotals(group.Members, group.Expenses)
	balances := make([]api.MemberBalance, len(totals))
	for i, t := range totals {
		m := byID[t.MemberID]
		balances[i] = api.MemberBalance{
			MemberID:   t.MemberID,
			Name:       m.Name,
			Cached:     calculator.Round2(m.Balance),
			TotalPaid:  calculator.Round2(t.TotalPaid),
			TotalOwed:  calculator.Round2(t.TotalOwed),
			NetBalance: calculator.Round2(t.NetBalance),
		}
	}

	slog.Info("GetBalances successful",
		"group_id", req.Msg.GroupID,
		"expenses_count", len(group.Expenses),
		"members_count", len(balances),
	)

	return connect.NewResponse(&api.GetBalancesResponse{Balances: balances}), nil
}

// SuggestSettlements recomputes balances from the expense history and
// returns the payments that settle the group. The cache is never consulted.
func (s *LedgerService) SuggestSettlements(ctx context.Context, req *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	slog.Info("SuggestSettlements request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("SuggestSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	debts := calculator.SimplifyDebts(calculator.CalculateNetBalances(group.Members, group.Expenses))
	var total float64
	for _, d := range debts {
		total += d.Amount
	}

	slog.Info("SuggestSettlements successful", "group_id", req.Msg.GroupID, "debts_count", len(debts))

	return connect.NewResponse(&api.SuggestSettlementsResponse{
		Debts: toAPIDebts(debts),
		Total: calculator.Round2(total),
	}), nil
}

// Reconcile recomputes every member's balance from the expense history,
// reports the members whose cache had drifted and writes the fresh values
// back.
func (s *LedgerService) Reconcile(ctx context.Context, req *connect.Request[api.ReconcileRequest]) (*connect.Response[api.ReconcileResponse], error) {
	slog.Info("Reconcile request received", "group_id", req.Msg.GroupID)

	defer s.locks.Lock(req.Msg.GroupID)()

	group, drifts, err := reconcileGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		slog.Error("Reconcile failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.Reconciled(len(drifts))

	out := make([]api.BalanceDrift, len(drifts))
	for i, d := range drifts {
		out[i] = api.BalanceDrift{MemberID: d.MemberID, Cached: d.Cached, Computed: d.Computed}
	}
	if len(drifts) > 0 {
		slog.Warn("Cached balances drifted", "group_id", req.Msg.GroupID, "members", len(drifts))
	}

	return connect.NewResponse(&api.ReconcileResponse{
		Drifts:  out,
		Members: toAPIMembers(group.Members),
	}), nil
}

// reconcileGroup loads a group, recomputes its balances and overwrites any
// cached value that differs. Only differences above driftTolerance are
// reported as drift. The returned group carries the fresh balances. Callers
// must hold the group's lock.
func reconcileGroup(ctx context.Context, store storage.Store, groupID string) (*models.Group, []models.BalanceDrift, error) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	computed := calculator.CalculateNetBalances(group.Members, group.Expenses)
	var drifts []models.BalanceDrift
	changed := false
	fresh := make(map[string]float64, len(group.Members))
	for i := range group.Members {
		m := &group.Members[i]
		want := computed[m.ID]
		if math.Abs(m.Balance-want) > driftTolerance {
			drifts = append(drifts, models.BalanceDrift{MemberID: m.ID, Cached: m.Balance, Computed: want})
		}
		if m.Balance != want {
			changed = true
		}
		fresh[m.ID] = want
		m.Balance = want
	}

	if changed {
		if err := store.SetMemberBalances(ctx, groupID, fresh); err != nil {
			return nil, nil, err
		}
	}
	return group, drifts, nil
}
