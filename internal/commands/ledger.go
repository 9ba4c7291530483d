package commands

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

// ledgerFile is the on-disk shape of an offline ledger. JSON files parse
// too, since JSON is valid YAML.
type ledgerFile struct {
	Currency string          `yaml:"currency,omitempty"`
	Members  []ledgerMember  `yaml:"members"`
	Expenses []ledgerExpense `yaml:"expenses"`
}

type ledgerMember struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// ledgerExpense either lists its split details or describes how to compute
// them. With neither, the amount is split equally among all members.
type ledgerExpense struct {
	Description  string             `yaml:"description,omitempty"`
	Date         string             `yaml:"date,omitempty"`
	Amount       float64            `yaml:"amount"`
	PaidBy       string             `yaml:"paidBy"`
	SplitMethod  string             `yaml:"splitMethod,omitempty"`
	Participants []string           `yaml:"participants,omitempty"`
	CustomValues map[string]float64 `yaml:"customValues,omitempty"`
	SplitDetails []ledgerSplit      `yaml:"splitDetails,omitempty"`
}

type ledgerSplit struct {
	MemberID string  `yaml:"memberId"`
	Amount   float64 `yaml:"amount"`
}

// ledger is a loaded and validated ledger file.
type ledger struct {
	currency string
	members  []models.Member
	expenses []models.Expense
}

func (l *ledger) name(id string) string {
	for _, m := range l.members {
		if m.ID == id && m.Name != "" {
			return m.Name
		}
	}
	return id
}

// loadLedger reads a ledger file and builds its expenses.
func loadLedger(path string) (*ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	var f ledgerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	return f.build()
}

func (f *ledgerFile) build() (*ledger, error) {
	l := &ledger{currency: f.Currency}

	seen := make(map[string]bool, len(f.Members))
	for _, m := range f.Members {
		if m.ID == "" {
			return nil, fmt.Errorf("member without id")
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate member %q", m.ID)
		}
		seen[m.ID] = true
		l.members = append(l.members, models.Member{ID: m.ID, Name: m.Name})
	}

	all := make([]string, len(l.members))
	for i, m := range l.members {
		all[i] = m.ID
	}

	for i, e := range f.Expenses {
		if err := calculator.ValidateAmount(e.Amount); err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i+1, e.Description, err)
		}
		expense := models.Expense{
			ID:          fmt.Sprintf("%d", i+1),
			Description: e.Description,
			Date:        e.Date,
			Amount:      calculator.Round2(e.Amount),
			PaidBy:      e.PaidBy,
			SplitMethod: models.SplitMethod(e.SplitMethod),
		}
		if expense.SplitMethod == "" {
			expense.SplitMethod = models.SplitMethodEqual
		}

		if len(e.SplitDetails) > 0 {
			if e.SplitMethod == "" {
				expense.SplitMethod = models.SplitMethodExact
			}
			for _, d := range e.SplitDetails {
				expense.SplitDetails = append(expense.SplitDetails, models.SplitDetail{MemberID: d.MemberID, Amount: d.Amount})
			}
		} else {
			participants := e.Participants
			if len(participants) == 0 {
				participants = all
			}
			if err := calculator.ValidateSplitInput(e.Amount, participants, expense.SplitMethod, e.CustomValues); err != nil {
				return nil, fmt.Errorf("expense %d (%s): %w", i+1, e.Description, err)
			}
			expense.SplitDetails = calculator.CalculateSplits(e.Amount, participants, expense.SplitMethod, e.CustomValues)
		}

		if err := calculator.ValidateExpense(expense); err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i+1, e.Description, err)
		}
		for _, id := range append([]string{expense.PaidBy}, participantIDs(expense)...) {
			if !seen[id] {
				slog.Warn("Expense references unknown member", "expense", i+1, "member", id)
			}
		}
		l.expenses = append(l.expenses, expense)
	}

	slog.Debug("Ledger loaded", "members", len(l.members), "expenses", len(l.expenses))
	return l, nil
}

func participantIDs(e models.Expense) []string {
	ids := make([]string, len(e.SplitDetails))
	for i, d := range e.SplitDetails {
		ids[i] = d.MemberID
	}
	return ids
}

// resolveCurrency picks the flag, then the ledger's currency, then USD.
func resolveCurrency(flag, fromFile string) string {
	if flag != "" {
		return flag
	}
	if fromFile != "" {
		return fromFile
	}
	return defaultCurrency
}
