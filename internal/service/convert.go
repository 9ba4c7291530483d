package service

import (
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIMembers(members []models.Member) []api.Member {
	out := make([]api.Member, len(members))
	for i, m := range members {
		out[i] = api.Member{ID: m.ID, Name: m.Name, Balance: m.Balance}
	}
	return out
}

func fromAPIMembers(members []api.Member) []models.Member {
	out := make([]models.Member, len(members))
	for i, m := range members {
		out[i] = models.Member{ID: m.ID, Name: m.Name}
	}
	return out
}

func toAPISplitDetails(details []models.SplitDetail) []api.SplitDetail {
	out := make([]api.SplitDetail, len(details))
	for i, d := range details {
		out[i] = api.SplitDetail{MemberID: d.MemberID, Amount: d.Amount, Percentage: d.Percentage}
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Date:         e.Date,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		SplitDetails: toAPISplitDetails(e.SplitDetails),
		SplitMethod:  string(e.SplitMethod),
		CreatedAt:    e.CreatedAt,
	}
}

func toAPIExpenses(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i := range expenses {
		out[i] = *toAPIExpense(&expenses[i])
	}
	return out
}

func toAPIGroup(g *models.Group) *api.Group {
	group := &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   toAPIMembers(g.Members),
		CreatedAt: g.CreatedAt,
	}
	if len(g.Expenses) > 0 {
		group.Expenses = toAPIExpenses(g.Expenses)
	}
	return group
}

func toAPIDebts(debts []models.Debt) []api.Debt {
	out := make([]api.Debt, len(debts))
	for i, d := range debts {
		out[i] = api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}
	return out
}
