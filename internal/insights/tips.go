package insights

import (
	"strconv"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

// Tip codes.
const (
	TipSubscriptionDetected = "TIP_SUBSCRIPTION_DETECTED"
	TipSmallExpenses        = "TIP_SMALL_EXPENSES"
	TipNoSavings            = "TIP_NO_SAVINGS"
	TipNoIncome             = "TIP_NO_INCOME_RECORDED"
	TipDominantCategory     = "TIP_DOMINANT_CATEGORY"
)

const (
	smallExpenseRatio    = 0.1
	smallExpenseMinCount = 10
	smallExpenseMinShare = 0.05
	dominantShare        = 0.5
)

// GenerateSavingsTips scans the history for simple optimization opportunities.
func GenerateSavingsTips(txs []model.Transaction) []model.Tip {
	var tips []model.Tip
	if len(txs) == 0 {
		return tips
	}
	currency := currencyOf(txs, "USD")

	for _, s := range DetectSubscriptions(txs) {
		tips = append(tips, model.Tip{
			Code: TipSubscriptionDetected,
			Params: map[string]string{
				"merchant":  s.MerchantName,
				"amount":    s.AverageAmount.Amount.StringFixed(money.Places),
				"currency":  s.AverageAmount.Currency,
				"frequency": string(s.Frequency),
			},
		})
	}

	expenses := expensesOf(txs)
	totalExpense := sumMagnitudes(expenses)
	totalIncome := sumMagnitudes(incomesOf(txs))

	if len(expenses) > 0 && totalExpense > 0 {
		threshold := mean(magnitudes(expenses)) * smallExpenseRatio
		var count int
		var small float64
		for _, a := range magnitudes(expenses) {
			if a <= threshold {
				count++
				small += a
			}
		}
		if count >= smallExpenseMinCount && small/totalExpense >= smallExpenseMinShare {
			tips = append(tips, model.Tip{
				Code: TipSmallExpenses,
				Params: map[string]string{
					"count":    strconv.Itoa(count),
					"total":    moneyOf(small, currency).Amount.StringFixed(money.Places),
					"currency": currency,
				},
			})
		}

		shares := make(map[string]float64)
		for _, e := range expenses {
			shares[NormalizeCategory(e.Category)] += e.Amount.Amount.Abs().InexactFloat64() / totalExpense
		}
		for _, c := range sortedKeys(shares) {
			if c != CategoryOther && c != CategoryHousing && shares[c] > dominantShare {
				tips = append(tips, model.Tip{
					Code:   TipDominantCategory,
					Params: map[string]string{"category": c, "share": formatFloat(shares[c] * 100)},
				})
			}
		}
	}

	switch {
	case totalIncome <= 0:
		tips = append(tips, model.Tip{Code: TipNoIncome})
	case totalExpense >= totalIncome:
		tips = append(tips, model.Tip{
			Code:   TipNoSavings,
			Params: map[string]string{"overspend": moneyOf(totalExpense-totalIncome, currency).Amount.StringFixed(money.Places), "currency": currency},
		})
	}

	return tips
}
