package insights

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

var (
	decimalHundred = decimal.NewFromInt(100)
	decimalThirty  = decimal.NewFromInt(30)
)

// CalculateBalanceMetrics sums income and expenses in the optional inclusive
// [start, end] window. When both bounds are given the average daily expense is spread
// over the window; otherwise over the span of the observed expense dates.
func CalculateBalanceMetrics(txs []model.Transaction, currency string, start, end *time.Time) model.BalanceMetrics {
	income := money.Zero(currency)
	expense := money.Zero(currency)
	var firstExpense, lastExpense time.Time

	for _, t := range txs {
		if !inWindow(t.Date, start, end) {
			continue
		}
		amt := money.New(t.Amount.Amount.Abs(), currency)
		if t.IsExpense {
			expense = expense.Add(amt)
			if firstExpense.IsZero() || t.Date.Before(firstExpense) {
				firstExpense = t.Date
			}
			if lastExpense.IsZero() || t.Date.After(lastExpense) {
				lastExpense = t.Date
			}
		} else {
			income = income.Add(amt)
		}
	}

	balance := income.Sub(expense)

	var savingsRate float64
	if income.IsPositive() {
		rate := balance.Amount.Div(income.Amount).Mul(decimalHundred).Round(money.Places)
		savingsRate = math.Max(0, rate.InexactFloat64())
	}

	var days int
	switch {
	case start != nil && end != nil:
		days = daysBetween(*start, *end)
	case !firstExpense.IsZero():
		days = daysBetween(firstExpense, lastExpense)
	}
	if days < 1 {
		days = 1
	}

	avgDaily := expense.Div(decimal.NewFromInt(int64(days))).Round()

	var monthsOfSavings float64
	if avgDaily.IsPositive() {
		monthly := avgDaily.Amount.Mul(decimalThirty)
		monthsOfSavings = balance.Amount.DivRound(monthly, 4).InexactFloat64()
	}

	return model.BalanceMetrics{
		Income:              income.Round(),
		Expense:             expense.Round(),
		Balance:             balance.Round(),
		SavingsRate:         savingsRate,
		MonthsOfSavings:     monthsOfSavings,
		AverageDailyExpense: avgDaily,
	}
}

func inWindow(d time.Time, start, end *time.Time) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
