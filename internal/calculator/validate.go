package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	ErrNonPositiveAmount    = errors.New("amount must be positive")
	ErrNonFiniteAmount      = errors.New("amount must be a finite number")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrDuplicateParticipant = errors.New("participants must be distinct")
	ErrMissingPayer         = errors.New("payer is required")
	ErrUnknownSplitMethod   = errors.New("unknown split method")
	ErrMissingCustomValues  = errors.New("a custom value is required for every participant")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrNegativeShare        = errors.New("split amounts cannot be negative")
	ErrInvalidExactAmounts  = errors.New("split amounts must sum to the total amount")
)

// ValidateAmount rejects NaN, infinite and non-positive amounts. Every other
// function in this package assumes a finite amount.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrNonFiniteAmount
	}
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// ValidateSplitInput checks the inputs CalculateSplits would silently accept.
func ValidateSplitInput(amount float64, participantIDs []string, method models.SplitMethod, customValues map[string]float64) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if len(participantIDs) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[string]bool, len(participantIDs))
	for _, id := range participantIDs {
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		seen[id] = true
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSplitMethod, method)
	}
	if method == models.SplitMethodEqual {
		return nil
	}

	sum := decimal.Zero
	for _, id := range participantIDs {
		v, ok := customValues[id]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrMissingCustomValues, id)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q", ErrNonFiniteAmount, id)
		}
		if v < 0 {
			return ErrNegativeShare
		}
		if method == models.SplitMethodPercentage && v > 100 {
			return ErrPercentageOutOfRange
		}
		sum = sum.Add(decimal.NewFromFloat(v))
	}

	switch method {
	case models.SplitMethodPercentage:
		if sum.Sub(hundred).Abs().GreaterThan(cent) {
			return fmt.Errorf("%w: got %s", ErrInvalidPercentages, sum.String())
		}
	case models.SplitMethodExact:
		if !sum.Round(2).Equal(decimal.NewFromFloat(amount).Round(2)) {
			return fmt.Errorf("%w: got %s, want %.2f", ErrInvalidExactAmounts, sum.StringFixed(2), amount)
		}
	}
	return nil
}

// ValidateExpense checks a fully built expense: a payer, a positive amount,
// distinct non-negative shares, and shares that add up to the amount.
func ValidateExpense(e models.Expense) error {
	if e.PaidBy == "" {
		return ErrMissingPayer
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if len(e.SplitDetails) == 0 {
		return ErrNoParticipants
	}
	if !e.SplitMethod.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSplitMethod, e.SplitMethod)
	}
	seen := make(map[string]bool, len(e.SplitDetails))
	for _, d := range e.SplitDetails {
		if seen[d.MemberID] {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, d.MemberID)
		}
		seen[d.MemberID] = true
		if math.IsNaN(d.Amount) || math.IsInf(d.Amount, 0) {
			return fmt.Errorf("%w: %q", ErrNonFiniteAmount, d.MemberID)
		}
		if d.Amount < 0 {
			return ErrNegativeShare
		}
	}
	if got := SumSplits(e.SplitDetails); got != Round2(e.Amount) {
		return fmt.Errorf("%w: got %.2f, want %.2f", ErrInvalidExactAmounts, got, e.Amount)
	}
	return nil
}
