package insights

import (
	"math"

	"github.com/castlemilk/finhealth/internal/model"
)

// InsufficientData labels a comparison computed without any transactions.
const InsufficientData = "insufficient_data"

// benchmark is a static peer profile. The values are fixed reference constants,
// not aggregated from real users.
type benchmark struct {
	savingsRate   float64
	healthScore   float64
	categoryShare map[string]float64
	sampleSize    int
}

type incomeBracket struct {
	label string
	upper float64
}

// incomeBrackets are keyed by average monthly income in major currency units.
var incomeBrackets = []incomeBracket{
	{"<30k", 30_000},
	{"30-50k", 50_000},
	{"50-75k", 75_000},
	{"75-100k", 100_000},
	{"100-150k", 150_000},
	{"150-200k", 200_000},
	{"200-300k", 300_000},
	{"300k+", math.Inf(1)},
}

var benchmarks = map[string]benchmark{
	"<30k": {
		savingsRate: 0.03, healthScore: 38, sampleSize: 1240,
		categoryShare: map[string]float64{CategoryGroceries: 0.35, CategoryTransport: 0.12, CategoryUtilities: 0.15, CategoryClothing: 0.06, CategoryEntertainment: 0.04},
	},
	"30-50k": {
		savingsRate: 0.06, healthScore: 45, sampleSize: 2180,
		categoryShare: map[string]float64{CategoryGroceries: 0.30, CategoryTransport: 0.12, CategoryUtilities: 0.13, CategoryClothing: 0.07, CategoryEntertainment: 0.05},
	},
	"50-75k": {
		savingsRate: 0.09, healthScore: 52, sampleSize: 2650,
		categoryShare: map[string]float64{CategoryGroceries: 0.26, CategoryTransport: 0.13, CategoryUtilities: 0.11, CategoryClothing: 0.08, CategoryEntertainment: 0.07},
	},
	"75-100k": {
		savingsRate: 0.12, healthScore: 58, sampleSize: 1930,
		categoryShare: map[string]float64{CategoryGroceries: 0.23, CategoryTransport: 0.13, CategoryUtilities: 0.10, CategoryClothing: 0.08, CategoryEntertainment: 0.08},
	},
	"100-150k": {
		savingsRate: 0.15, healthScore: 63, sampleSize: 1420,
		categoryShare: map[string]float64{CategoryGroceries: 0.20, CategoryTransport: 0.12, CategoryUtilities: 0.09, CategoryClothing: 0.09, CategoryEntertainment: 0.09},
	},
	"150-200k": {
		savingsRate: 0.18, healthScore: 67, sampleSize: 860,
		categoryShare: map[string]float64{CategoryGroceries: 0.18, CategoryTransport: 0.11, CategoryUtilities: 0.08, CategoryClothing: 0.09, CategoryEntertainment: 0.10},
	},
	"200-300k": {
		savingsRate: 0.22, healthScore: 71, sampleSize: 540,
		categoryShare: map[string]float64{CategoryGroceries: 0.15, CategoryTransport: 0.10, CategoryUtilities: 0.07, CategoryClothing: 0.10, CategoryEntertainment: 0.11},
	},
	"300k+": {
		savingsRate: 0.27, healthScore: 75, sampleSize: 310,
		categoryShare: map[string]float64{CategoryGroceries: 0.12, CategoryTransport: 0.09, CategoryUtilities: 0.06, CategoryClothing: 0.10, CategoryEntertainment: 0.12},
	},
}

// ClassifyIncomeBracket returns the bracket label for an average monthly income.
func ClassifyIncomeBracket(avgMonthlyIncome float64) string {
	for _, b := range incomeBrackets {
		if avgMonthlyIncome < b.upper {
			return b.label
		}
	}
	return incomeBrackets[len(incomeBrackets)-1].label
}

// CalculatePeerComparison compares the user's savings rate, category mix and health
// score against the benchmark of their income bracket.
func CalculatePeerComparison(txs []model.Transaction, healthScore float64) model.PeerComparison {
	if len(txs) == 0 {
		deltas := make(map[string]float64, len(PeerCategories))
		for _, c := range PeerCategories {
			deltas[c] = 0
		}
		return model.PeerComparison{
			IncomeRange:              InsufficientData,
			ExpenseCategoriesVsPeers: deltas,
			HealthScorePercentile:    50,
		}
	}

	keys, income, expense := monthlyTotals(txs)
	var totalIncome, totalExpense float64
	for _, k := range keys {
		totalIncome += income[k]
		totalExpense += expense[k]
	}
	avgIncome := totalIncome / float64(len(keys))

	bracket := ClassifyIncomeBracket(avgIncome)
	bench := benchmarks[bracket]

	var userRate float64
	if totalIncome > 0 {
		userRate = math.Max(0, (totalIncome-totalExpense)/totalIncome)
	}

	shares := categoryShares(expensesOf(txs))
	deltas := make(map[string]float64, len(PeerCategories))
	for _, c := range PeerCategories {
		deltas[c] = (shares[c] - bench.categoryShare[c]) * 100
	}

	return model.PeerComparison{
		IncomeRange:              bracket,
		SavingsRateVsPeers:       (userRate - bench.savingsRate) * 100,
		ExpenseCategoriesVsPeers: deltas,
		HealthScorePercentile:    estimatePercentile(userRate, healthScore, bench),
		PeerGroupSize:            bench.sampleSize,
	}
}

// categoryShares returns each core category's share of total expense.
func categoryShares(expenses []model.Transaction) map[string]float64 {
	shares := make(map[string]float64)
	total := sumMagnitudes(expenses)
	if total <= 0 {
		return shares
	}
	for _, e := range expenses {
		shares[NormalizeCategory(e.Category)] += e.Amount.Amount.Abs().InexactFloat64() / total
	}
	return shares
}

// estimatePercentile blends savings performance (60%) and health performance (40%)
// relative to the benchmark and maps the ratio onto a fixed percentile scale.
func estimatePercentile(userRate, healthScore float64, bench benchmark) float64 {
	var savingsPerf, healthPerf float64
	if bench.savingsRate > 0 {
		savingsPerf = userRate / bench.savingsRate
	}
	if bench.healthScore > 0 {
		healthPerf = healthScore / bench.healthScore
	}
	blend := 0.6*savingsPerf + 0.4*healthPerf

	var percentile float64
	switch {
	case blend >= 2.0:
		percentile = 95
	case blend >= 1.5:
		percentile = 85
	case blend >= 1.2:
		percentile = 75
	case blend >= 1.0:
		percentile = 60
	case blend >= 0.8:
		percentile = 45
	case blend >= 0.6:
		percentile = 30
	case blend >= 0.4:
		percentile = 20
	default:
		percentile = 10
	}
	return clamp(percentile, 1, 99)
}
