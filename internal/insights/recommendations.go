package insights

import (
	"math"
	"sort"
	"strconv"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

// Recommendation codes.
const (
	RecImproveFinancialHealth   = "IMPROVE_FINANCIAL_HEALTH"
	RecMaintainFinancialHealth  = "MAINTAIN_FINANCIAL_HEALTH"
	RecImproveExpenseControl    = "IMPROVE_EXPENSE_CONTROL"
	RecOptimizeExpenses         = "OPTIMIZE_EXPENSES"
	RecIncreaseRetirementSaving = "INCREASE_RETIREMENT_SAVINGS"
	RecOptimizeRetirementPlan   = "OPTIMIZE_RETIREMENT_PLAN"
	RecIncreaseSavingsRate      = "INCREASE_SAVINGS_RATE"
	RecDiversifyIncome          = "DIVERSIFY_INCOME"
	RecBudgetExceeded           = "BUDGET_EXCEEDED"
	RecBudgetApproaching        = "BUDGET_APPROACHING_LIMIT"
	RecReviewSubscriptions      = "REVIEW_SUBSCRIPTIONS"
	RecReduceDiningOut          = "REDUCE_DINING_OUT"
	RecBuildEmergencyFund       = "BUILD_EMERGENCY_FUND"
)

const (
	subscriptionThreshold  = 3
	diningThreshold        = 5
	peerSavingsGapPoints   = -5.0
	emergencyFundMonths    = 3.0
	budgetWarningThreshold = 0.8
)

// RecommendationInput gathers everything the rule set looks at.
type RecommendationInput struct {
	Transactions    []model.Transaction
	Wallets         []model.Wallet
	HealthScore     float64
	DisciplineIndex float64
	Retirement      model.RetirementForecast
	Peer            model.PeerComparison
	Currency        string
}

// GenerateRecommendations applies every rule independently and returns the results
// ordered by priority, then potential impact. Recommendations are not deduplicated.
func GenerateRecommendations(in RecommendationInput) []model.Recommendation {
	currency := in.Currency
	if currency == "" {
		currency = currencyOf(in.Transactions, "USD")
	}
	var recs []model.Recommendation
	add := func(code string, p model.Priority, c model.RecommendationCategory, impact float64, params map[string]string) {
		recs = append(recs, model.Recommendation{
			Code:            code,
			Params:          params,
			Priority:        p,
			Category:        c,
			PotentialImpact: impact,
		})
	}

	switch {
	case in.HealthScore < 50:
		add(RecImproveFinancialHealth, model.PriorityHigh, model.CategorySavings, 15,
			map[string]string{"score": formatFloat(in.HealthScore)})
	case in.HealthScore < 70:
		add(RecMaintainFinancialHealth, model.PriorityMedium, model.CategorySavings, 8,
			map[string]string{"score": formatFloat(in.HealthScore)})
	}

	switch {
	case in.DisciplineIndex < 60:
		add(RecImproveExpenseControl, model.PriorityHigh, model.CategoryExpenses, 12,
			map[string]string{"index": formatFloat(in.DisciplineIndex)})
	case in.DisciplineIndex < 80:
		add(RecOptimizeExpenses, model.PriorityMedium, model.CategoryExpenses, 6,
			map[string]string{"index": formatFloat(in.DisciplineIndex)})
	}

	r := in.Retirement
	switch {
	case r.SavingsGap.IsPositive():
		add(RecIncreaseRetirementSaving, model.PriorityHigh, model.CategoryRetirement, 14,
			map[string]string{
				"gap":           r.SavingsGap.Amount.StringFixed(money.Places),
				"monthlyNeeded": r.MonthlySavingsNeeded.Amount.StringFixed(money.Places),
				"currency":      r.SavingsGap.Currency,
			})
	case r.RiskLevel == model.RiskHigh || r.RiskLevel == model.RiskCritical:
		add(RecOptimizeRetirementPlan, model.PriorityMedium, model.CategoryRetirement, 9,
			map[string]string{"risk": string(r.RiskLevel)})
	}

	if in.Peer.IncomeRange != InsufficientData && in.Peer.SavingsRateVsPeers < peerSavingsGapPoints {
		add(RecIncreaseSavingsRate, model.PriorityMedium, model.CategorySavings, 7,
			map[string]string{"delta": formatFloat(math.Abs(in.Peer.SavingsRateVsPeers))})
	}

	if sources := distinctIncomeSources(in.Transactions); sources < 2 {
		priority, impact := model.PriorityLow, 4.0
		if sources == 0 {
			priority, impact = model.PriorityMedium, 6.0
		}
		add(RecDiversifyIncome, priority, model.CategoryIncome, impact,
			map[string]string{"sources": strconv.Itoa(sources)})
	}

	for _, w := range in.Wallets {
		if !w.HasBudget() {
			continue
		}
		params := map[string]string{
			"wallet":   w.Name,
			"category": w.Category,
			"spent":    w.Spent.Amount.StringFixed(money.Places),
			"limit":    w.Limit.Amount.StringFixed(money.Places),
			"currency": w.Limit.Currency,
		}
		ratio := w.Spent.Amount.Div(w.Limit.Amount).InexactFloat64()
		switch {
		case w.Spent.Cmp(w.Limit) > 0:
			add(RecBudgetExceeded, model.PriorityHigh, model.CategoryExpenses, 10, params)
		case ratio >= budgetWarningThreshold:
			add(RecBudgetApproaching, model.PriorityMedium, model.CategoryExpenses, 5, params)
		}
	}

	var subs, dining []money.Money
	for _, t := range in.Transactions {
		if !t.IsExpense {
			continue
		}
		switch {
		case IsSubscriptionCategory(t.Category):
			subs = append(subs, t.Amount.Abs())
		case IsDiningCategory(t.Category):
			dining = append(dining, t.Amount.Abs())
		}
	}
	if len(subs) > subscriptionThreshold {
		add(RecReviewSubscriptions, model.PriorityMedium, model.CategoryExpenses, 5,
			map[string]string{"count": strconv.Itoa(len(subs)), "total": money.Sum(currency, subs...).Amount.StringFixed(money.Places), "currency": currency})
	}
	if len(dining) > diningThreshold {
		add(RecReduceDiningOut, model.PriorityLow, model.CategoryExpenses, 3,
			map[string]string{"count": strconv.Itoa(len(dining)), "total": money.Sum(currency, dining...).Amount.StringFixed(money.Places), "currency": currency})
	}

	if months, ok := emergencyFundCoverage(in.Transactions, r); ok && months < emergencyFundMonths {
		add(RecBuildEmergencyFund, model.PriorityHigh, model.CategoryEmergencyFund, 13,
			map[string]string{"months": formatFloat(months)})
	}

	SortRecommendations(recs)
	return recs
}

// SortRecommendations orders by priority rank, then potential impact, both descending.
func SortRecommendations(recs []model.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := recs[i].Priority.Rank(), recs[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return recs[i].PotentialImpact > recs[j].PotentialImpact
	})
}

// emergencyFundCoverage is monthly savings expressed in months of average spending.
func emergencyFundCoverage(txs []model.Transaction, r model.RetirementForecast) (float64, bool) {
	keys, _, expense := monthlyTotals(txs)
	if len(keys) == 0 {
		return 0, false
	}
	var total float64
	for _, k := range keys {
		total += expense[k]
	}
	avg := total / float64(len(keys))
	if avg <= 0 {
		return 0, false
	}
	return r.MonthlySavings.Float64() / avg, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
