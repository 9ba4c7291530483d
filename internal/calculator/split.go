package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	hundred = decimal.NewFromInt(100)

	// cent is the settlement dead-zone: balances within a cent of zero are settled.
	cent = decimal.New(1, -2)
)

// Round2 rounds v to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// CalculateSplits divides amount among participantIDs using method.
//
// For the equal method every participant but the last gets the exact share
// truncated to the cent, and the last participant absorbs the remainder so
// the shares always add back up to amount. customValues holds percentages
// for the percentage method and amounts for the exact method; it is ignored
// for equal splits.
//
// Percentages within a hundredth of 100 count as covering the whole amount,
// and the last participant takes whatever the others' truncated shares leave.
// That includes any uncovered percentage: three shares of 33.33% of 10000
// give the last participant 3334, one unit more than the others. Percentages
// further from 100 are applied as given and the shares fall short of amount.
//
// Invalid input never errors: an empty participant list, a missing
// customValues map, or an unknown method all yield an empty result. Use
// ValidateSplitInput first when the caller needs to know why.
func CalculateSplits(amount float64, participantIDs []string, method models.SplitMethod, customValues map[string]float64) []models.SplitDetail {
	if len(participantIDs) == 0 {
		return []models.SplitDetail{}
	}

	switch method {
	case models.SplitMethodEqual:
		return equalSplits(amount, participantIDs)
	case models.SplitMethodPercentage:
		if customValues == nil {
			return []models.SplitDetail{}
		}
		return percentageSplits(amount, participantIDs, customValues)
	case models.SplitMethodExact:
		if customValues == nil {
			return []models.SplitDetail{}
		}
		return exactSplits(participantIDs, customValues)
	default:
		return []models.SplitDetail{}
	}
}

func equalSplits(amount float64, participantIDs []string) []models.SplitDetail {
	total := decimal.NewFromFloat(amount)
	share := total.Div(decimal.NewFromInt(int64(len(participantIDs)))).RoundFloor(2)

	splits := make([]models.SplitDetail, len(participantIDs))
	assigned := decimal.Zero
	last := len(participantIDs) - 1
	for i, id := range participantIDs[:last] {
		splits[i] = models.SplitDetail{MemberID: id, Amount: share.InexactFloat64()}
		assigned = assigned.Add(share)
	}
	splits[last] = models.SplitDetail{
		MemberID: participantIDs[last],
		Amount:   total.Sub(assigned).Round(2).InexactFloat64(),
	}
	return splits
}

// percentageSplits truncates each share to the cent. When the percentages
// cover the whole amount the last participant absorbs the truncation residue,
// matching equal splits; partial percentages are left uncorrected.
func percentageSplits(amount float64, participantIDs []string, percentages map[string]float64) []models.SplitDetail {
	total := decimal.NewFromFloat(amount)

	splits := make([]models.SplitDetail, len(participantIDs))
	shares := make([]decimal.Decimal, len(participantIDs))
	assigned := decimal.Zero
	covered := decimal.Zero
	for i, id := range participantIDs {
		pct := percentages[id]
		p := decimal.NewFromFloat(pct)
		shares[i] = total.Mul(p).Div(hundred).RoundFloor(2)
		assigned = assigned.Add(shares[i])
		covered = covered.Add(p)
		splits[i] = models.SplitDetail{MemberID: id, Amount: shares[i].InexactFloat64(), Percentage: &pct}
	}

	if covered.Sub(hundred).Abs().LessThanOrEqual(cent) {
		last := len(splits) - 1
		others := assigned.Sub(shares[last])
		splits[last].Amount = total.Sub(others).Round(2).InexactFloat64()
	}
	return splits
}

func exactSplits(participantIDs []string, amounts map[string]float64) []models.SplitDetail {
	splits := make([]models.SplitDetail, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = models.SplitDetail{MemberID: id, Amount: Round2(amounts[id])}
	}
	return splits
}

// SumSplits returns the total of the split amounts rounded to cents.
func SumSplits(splits []models.SplitDetail) float64 {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(decimal.NewFromFloat(s.Amount))
	}
	return sum.Round(2).InexactFloat64()
}
