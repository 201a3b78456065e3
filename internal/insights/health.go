package insights

import (
	"math"

	"github.com/castlemilk/finhealth/internal/model"
)

const maxComponentScore = 25.0

// CalculateFinancialHealthScore returns the 0-100 health score and its breakdown.
// periodMonths is reserved and does not filter the input.
func CalculateFinancialHealthScore(txs []model.Transaction, _ int) (float64, model.HealthScoreBreakdown) {
	if len(txs) == 0 {
		return 0, model.HealthScoreBreakdown{}
	}

	keys, income, expense := monthlyTotals(txs)
	incomeSeries := make([]float64, len(keys))
	expenseSeries := make([]float64, len(keys))
	for i, k := range keys {
		incomeSeries[i] = income[k]
		expenseSeries[i] = expense[k]
	}

	b := model.HealthScoreBreakdown{
		SavingsRateScore:     clamp(savingsRateScore(incomeSeries, expenseSeries), 0, maxComponentScore),
		IncomeStabilityScore: clamp(incomeStabilityScore(incomeSeries), 0, maxComponentScore),
		ExpenseControlScore:  clamp(expenseControlScore(expenseSeries), 0, maxComponentScore),
		DiversificationScore: clamp(diversificationScore(txs), 0, maxComponentScore),
	}
	return b.Total(), b
}

// savingsRateScore averages the per-month savings rate (floored at 0) and maps the
// percentage onto 0-25 points.
func savingsRateScore(income, expense []float64) float64 {
	if len(income) == 0 {
		return 0
	}
	var sum float64
	for i := range income {
		if income[i] > 0 {
			sum += math.Max(0, (income[i]-expense[i])/income[i])
		}
	}
	pct := sum / float64(len(income)) * 100
	return savingsRatePoints(pct)
}

func savingsRatePoints(pct float64) float64 {
	switch {
	case pct >= 20:
		return 25
	case pct >= 10:
		return 10 + (pct-10)*1.5
	case pct >= 5:
		return 5 + (pct-5)*1.0
	default:
		return math.Max(0, pct)
	}
}

func incomeStabilityScore(income []float64) float64 {
	if len(income) < 2 {
		return maxComponentScore / 2
	}
	if mean(income) <= 0 {
		return 0
	}
	cv := coefficientOfVariation(income)
	switch {
	case cv <= 0.1:
		return 20 + (0.1-cv)*50
	case cv <= 0.2:
		return 15 + (0.2-cv)*50
	case cv <= 0.4:
		return 10 + (0.4-cv)*25
	default:
		return math.Max(0, 10-(cv-0.4)*20)
	}
}

// expenseControlScore combines month-to-month stability (up to 15 points) with the
// spread between the most and least expensive months (up to 10 points).
func expenseControlScore(expense []float64) float64 {
	if len(expense) < 2 {
		return maxComponentScore / 2
	}
	if mean(expense) <= 0 {
		return maxComponentScore
	}

	cv := coefficientOfVariation(expense)
	var stability float64
	switch {
	case cv <= 0.15:
		stability = 15
	case cv <= 0.25:
		stability = 12
	case cv <= 0.4:
		stability = 8
	default:
		stability = math.Max(0, 8-(cv-0.4)*20)
	}

	lo, hi := expense[0], expense[0]
	for _, v := range expense[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var rangeControl float64
	if lo > 0 {
		ratio := hi / lo
		switch {
		case ratio <= 1.5:
			rangeControl = 10
		case ratio <= 2:
			rangeControl = 7
		case ratio <= 3:
			rangeControl = 4
		default:
			rangeControl = 1
		}
	} else {
		rangeControl = 1
	}

	return math.Min(maxComponentScore, stability+rangeControl)
}

// diversificationScore rewards distinct income categories (up to 15 points) and
// distinct income sources (up to 10 points).
func diversificationScore(txs []model.Transaction) float64 {
	categories := make(map[string]struct{})
	sources := make(map[string]struct{})
	for _, t := range incomesOf(txs) {
		if t.Category != "" {
			categories[t.Category] = struct{}{}
		}
		if t.Source != "" {
			sources[t.Source] = struct{}{}
		}
	}

	var categoryPoints float64
	switch n := len(categories); {
	case n >= 3:
		categoryPoints = 15
	case n == 2:
		categoryPoints = 10
	case n == 1:
		categoryPoints = 5
	}

	var sourcePoints float64
	switch n := len(sources); {
	case n >= 3:
		sourcePoints = 10
	case n == 2:
		sourcePoints = 7
	case n == 1:
		sourcePoints = 4
	}

	return categoryPoints + sourcePoints
}

// distinctIncomeSources counts income sources, falling back to the category when a
// transaction has no source label.
func distinctIncomeSources(txs []model.Transaction) int {
	sources := make(map[string]struct{})
	for _, t := range incomesOf(txs) {
		key := t.Source
		if key == "" {
			key = t.Category
		}
		sources[key] = struct{}{}
	}
	return len(sources)
}
