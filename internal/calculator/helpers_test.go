package calculator

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func testMembers(n int) []models.Member {
	members := make([]models.Member, n)
	for i := range members {
		members[i] = models.Member{ID: fmt.Sprintf("m%02d", i), Name: fmt.Sprintf("Member %d", i)}
	}
	return members
}

// randomHistory builds count expenses the way the service does: a random
// payer, a random subset of participants, and equal or percentage splits
// computed by CalculateSplits.
func randomHistory(rng *rand.Rand, members []models.Member, count int) []models.Expense {
	expenses := make([]models.Expense, 0, count)
	for i := range count {
		amount := decimal.New(rng.Int63n(50_000)+1, -2).InexactFloat64()

		k := rng.Intn(len(members)) + 1
		participants := make([]string, k)
		for j, idx := range rng.Perm(len(members))[:k] {
			participants[j] = members[idx].ID
		}
		payer := members[rng.Intn(len(members))].ID

		method := models.SplitMethodEqual
		var custom map[string]float64
		if rng.Intn(2) == 0 {
			method = models.SplitMethodPercentage
			custom = randomPercentages(rng, participants)
		}

		expenses = append(expenses, models.Expense{
			ID:           fmt.Sprintf("e%03d", i),
			Amount:       amount,
			PaidBy:       payer,
			SplitDetails: CalculateSplits(amount, participants, method, custom),
			SplitMethod:  method,
		})
	}
	return expenses
}

func randomPercentages(rng *rand.Rand, ids []string) map[string]float64 {
	weights := make([]int, len(ids))
	total := 0
	for i := range weights {
		weights[i] = rng.Intn(10) + 1
		total += weights[i]
	}
	pcts := make(map[string]float64, len(ids))
	assigned := 0
	for i, id := range ids[:len(ids)-1] {
		p := weights[i] * 100 / total
		pcts[id] = float64(p)
		assigned += p
	}
	pcts[ids[len(ids)-1]] = float64(100 - assigned)
	return pcts
}
