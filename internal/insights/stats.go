package insights

import (
	"math"
	"sort"

	"github.com/castlemilk/finhealth/internal/model"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var varianceSum float64
	for _, v := range values {
		diff := v - avg
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(values)))
}

// coefficientOfVariation returns stddev/mean, or 0 when the mean is not positive.
func coefficientOfVariation(values []float64) float64 {
	avg := mean(values)
	if avg <= 0 {
		return 0
	}
	return stddev(values, avg) / avg
}

// median does not modify values.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func expensesOf(txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if t.IsExpense {
			out = append(out, t)
		}
	}
	return out
}

func incomesOf(txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if !t.IsExpense {
			out = append(out, t)
		}
	}
	return out
}

func magnitudes(txs []model.Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, t := range txs {
		out[i] = t.Amount.Amount.Abs().InexactFloat64()
	}
	return out
}

func sumMagnitudes(txs []model.Transaction) float64 {
	var total float64
	for _, t := range txs {
		total += t.Amount.Amount.Abs().InexactFloat64()
	}
	return total
}

// monthlyTotals returns income and expense sums per month key for every month
// that has at least one transaction, in ascending key order.
func monthlyTotals(txs []model.Transaction) (keys []string, income, expense map[string]float64) {
	income = make(map[string]float64)
	expense = make(map[string]float64)
	for key, bucket := range GroupBy(txs, Month) {
		keys = append(keys, key)
		for _, t := range bucket {
			amt := t.Amount.Amount.Abs().InexactFloat64()
			if t.IsExpense {
				expense[key] += amt
			} else {
				income[key] += amt
			}
		}
	}
	sort.Strings(keys)
	return keys, income, expense
}

// currencyOf picks the working currency of a transaction list.
func currencyOf(txs []model.Transaction, fallback string) string {
	for _, t := range txs {
		if t.Amount.Currency != "" {
			return t.Amount.Currency
		}
	}
	return fallback
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
