package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/splitledger/internal/models"
)

func TestValidateSplitInput(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		participants []string
		method       models.SplitMethod
		custom       map[string]float64
		wantErr      error
	}{
		{"valid equal", 10, []string{"A", "B"}, models.SplitMethodEqual, nil, nil},
		{"zero amount", 0, []string{"A"}, models.SplitMethodEqual, nil, ErrNonPositiveAmount},
		{"negative amount", -5, []string{"A"}, models.SplitMethodEqual, nil, ErrNonPositiveAmount},
		{"NaN amount", math.NaN(), []string{"A"}, models.SplitMethodEqual, nil, ErrNonFiniteAmount},
		{"infinite amount", math.Inf(1), []string{"A"}, models.SplitMethodEqual, nil, ErrNonFiniteAmount},
		{"negative infinite amount", math.Inf(-1), []string{"A"}, models.SplitMethodEqual, nil, ErrNonFiniteAmount},
		{"no participants", 10, nil, models.SplitMethodEqual, nil, ErrNoParticipants},
		{"duplicate participant", 10, []string{"A", "A"}, models.SplitMethodEqual, nil, ErrDuplicateParticipant},
		{"unknown method", 10, []string{"A"}, "shares", nil, ErrUnknownSplitMethod},
		{"valid percentage", 10, []string{"A", "B"}, models.SplitMethodPercentage, map[string]float64{"A": 60, "B": 40}, nil},
		{"missing percentage", 10, []string{"A", "B"}, models.SplitMethodPercentage, map[string]float64{"A": 100}, ErrMissingCustomValues},
		{"nil custom values", 10, []string{"A"}, models.SplitMethodPercentage, nil, ErrMissingCustomValues},
		{"negative percentage", 10, []string{"A", "B"}, models.SplitMethodPercentage, map[string]float64{"A": -20, "B": 120}, ErrNegativeShare},
		{"percentage out of range", 10, []string{"A"}, models.SplitMethodPercentage, map[string]float64{"A": 101}, ErrPercentageOutOfRange},
		{"percentages short of 100", 10, []string{"A", "B"}, models.SplitMethodPercentage, map[string]float64{"A": 50, "B": 40}, ErrInvalidPercentages},
		{"NaN percentage", 10, []string{"A", "B"}, models.SplitMethodPercentage, map[string]float64{"A": math.NaN(), "B": 100}, ErrNonFiniteAmount},
		{"valid exact", 10, []string{"A", "B"}, models.SplitMethodExact, map[string]float64{"A": 2.5, "B": 7.5}, nil},
		{"infinite exact amount", 10, []string{"A", "B"}, models.SplitMethodExact, map[string]float64{"A": math.Inf(1), "B": 7.5}, ErrNonFiniteAmount},
		{"exact mismatch", 10, []string{"A", "B"}, models.SplitMethodExact, map[string]float64{"A": 2.5, "B": 7.4}, ErrInvalidExactAmounts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplitInput(tt.amount, tt.participants, tt.method, tt.custom)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateExpense(t *testing.T) {
	valid := models.Expense{
		Amount:      10,
		PaidBy:      "A",
		SplitMethod: models.SplitMethodEqual,
		SplitDetails: []models.SplitDetail{
			{MemberID: "A", Amount: 3.33},
			{MemberID: "B", Amount: 3.33},
			{MemberID: "C", Amount: 3.34},
		},
	}
	assert.NoError(t, ValidateExpense(valid))

	noPayer := valid
	noPayer.PaidBy = ""
	assert.ErrorIs(t, ValidateExpense(noPayer), ErrMissingPayer)

	short := valid
	short.SplitDetails = valid.SplitDetails[:2]
	assert.ErrorIs(t, ValidateExpense(short), ErrInvalidExactAmounts)

	nan := valid
	nan.Amount = math.NaN()
	assert.ErrorIs(t, ValidateExpense(nan), ErrNonFiniteAmount)

	infShare := valid
	infShare.SplitDetails = []models.SplitDetail{{MemberID: "A", Amount: math.Inf(1)}}
	assert.ErrorIs(t, ValidateExpense(infShare), ErrNonFiniteAmount)

	dup := valid
	dup.SplitDetails = []models.SplitDetail{{MemberID: "A", Amount: 5}, {MemberID: "A", Amount: 5}}
	assert.ErrorIs(t, ValidateExpense(dup), ErrDuplicateParticipant)

	assert.NoError(t, ValidateExpense(SettlementExpense(models.Debt{From: "B", To: "A", Amount: 5})))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(0.01))
	assert.ErrorIs(t, ValidateAmount(0), ErrNonPositiveAmount)
	assert.ErrorIs(t, ValidateAmount(math.NaN()), ErrNonFiniteAmount)
	assert.ErrorIs(t, ValidateAmount(math.Inf(-1)), ErrNonFiniteAmount)
}
