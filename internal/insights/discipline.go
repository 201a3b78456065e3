package insights

import (
	"github.com/castlemilk/finhealth/internal/model"
)

// DefaultPeriodMonths is the nominal analysis window. It is informational only and
// never truncates the input.
const DefaultPeriodMonths = 6

const (
	regularityWeight = 0.30
	impulseWeight    = 0.25
	budgetWeight     = 0.25
	planningWeight   = 0.20

	impulsiveMultiple = 3.0
	largeMultiple     = 5.0
	minRegularWeeks   = 4
)

// CalculateExpenseDisciplineIndex scores spending behavior on a 0-100 scale.
// An empty history scores 0; a history without expenses scores 100.
func CalculateExpenseDisciplineIndex(txs []model.Transaction, periodMonths int) float64 {
	index, _ := DisciplineIndexWithBreakdown(txs, periodMonths)
	return index
}

// DisciplineIndexWithBreakdown returns the index together with its sub-scores.
func DisciplineIndexWithBreakdown(txs []model.Transaction, _ int) (float64, model.DisciplineBreakdown) {
	if len(txs) == 0 {
		return 0, model.DisciplineBreakdown{}
	}
	expenses := expensesOf(txs)
	if len(expenses) == 0 {
		return 100, model.DisciplineBreakdown{
			Regularity:       1,
			ImpulseControl:   1,
			BudgetAdherence:  1,
			PurchasePlanning: 1,
		}
	}

	amounts := magnitudes(expenses)
	med := median(amounts)

	b := model.DisciplineBreakdown{
		Regularity:       regularityScore(expenses),
		ImpulseControl:   impulseControlScore(amounts, med),
		BudgetAdherence:  categoryConcentrationScore(expenses),
		PurchasePlanning: planningScore(expenses, med),
	}

	index := 100 * (b.Regularity*regularityWeight +
		b.ImpulseControl*impulseWeight +
		b.BudgetAdherence*budgetWeight +
		b.PurchasePlanning*planningWeight)

	return clamp(index, 0, 100), b
}

// regularityScore grades the coefficient of variation of weekly spending.
func regularityScore(expenses []model.Transaction) float64 {
	weekly := bucketTotals(GroupBy(expenses, Week))
	if len(weekly) < minRegularWeeks {
		return 0.5
	}
	if mean(weekly) <= 0 {
		return 0.5
	}
	cv := coefficientOfVariation(weekly)
	switch {
	case cv <= 0.2:
		return 1.0
	case cv <= 0.4:
		return 0.8
	case cv <= 0.6:
		return 0.6
	case cv <= 0.8:
		return 0.4
	default:
		return 0.2
	}
}

// impulseControlScore penalizes purchases above three times the median.
func impulseControlScore(amounts []float64, med float64) float64 {
	if len(amounts) == 0 {
		return 1
	}
	threshold := med * impulsiveMultiple
	var count int
	var impulsive, total float64
	for _, a := range amounts {
		total += a
		if a > threshold {
			count++
			impulsive += a
		}
	}
	countRatio := float64(count) / float64(len(amounts))
	var amountRatio float64
	if total > 0 {
		amountRatio = impulsive / total
	}
	penalty := 0.5*countRatio + 0.5*amountRatio
	return clamp(1-2*penalty, 0, 1)
}

// categoryConcentrationScore penalizes spending concentrated in few categories.
func categoryConcentrationScore(expenses []model.Transaction) float64 {
	byCategory := make(map[string]float64)
	var total float64
	for _, e := range expenses {
		amt := e.Amount.Amount.Abs().InexactFloat64()
		byCategory[e.Category] += amt
		total += amt
	}
	if total <= 0 {
		return 1
	}

	var hhi, dominancePenalty float64
	for _, amt := range byCategory {
		share := amt / total
		hhi += share * share
		if share > 0.4 {
			dominancePenalty += 0.2
		}
	}

	var concentrationPenalty float64
	switch {
	case hhi <= 0.2:
		concentrationPenalty = 0
	case hhi <= 0.3:
		concentrationPenalty = 0.1
	case hhi <= 0.5:
		concentrationPenalty = 0.3
	default:
		concentrationPenalty = 0.5
	}

	return clamp(1-concentrationPenalty-dominancePenalty, 0, 1)
}

// planningScore penalizes weeks that contain more than one large purchase.
func planningScore(expenses []model.Transaction, med float64) float64 {
	threshold := med * largeMultiple
	var large []model.Transaction
	for _, e := range expenses {
		if e.Amount.Amount.Abs().InexactFloat64() > threshold {
			large = append(large, e)
		}
	}
	if len(large) == 0 {
		return 1
	}

	weeks := GroupBy(large, Week)
	var clustered int
	for _, bucket := range weeks {
		if len(bucket) > 1 {
			clustered++
		}
	}
	ratio := float64(clustered) / float64(len(weeks))
	return clamp(1-ratio, 0, 1)
}
