package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

// DetectSubscriptions analyzes expense history for recurring patterns.
func DetectSubscriptions(txs []model.Transaction) []model.DetectedSubscription {
	// Group expenses by merchant key
	groups := make(map[string][]model.Transaction)
	for _, t := range expensesOf(txs) {
		key := merchantKey(t)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	var results []model.DetectedSubscription

	for name, group := range groups {
		if len(group) < 2 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		var intervals []float64
		for i := 1; i < len(group); i++ {
			days := group[i].Date.Sub(group[i-1].Date).Hours() / 24
			if days > 0 {
				intervals = append(intervals, days)
			}
		}
		if len(intervals) == 0 {
			continue
		}

		freq, freqConfidence := detectFrequency(intervals)
		if freq == model.FrequencyUnspecified {
			continue
		}

		amounts := magnitudes(group)
		avgAmount := mean(amounts)
		amountConfidence := 1.0
		if avgAmount > 0 {
			cv := math.Sqrt(sampleVariance(amounts, avgAmount)) / avgAmount
			if cv > 0.25 {
				amountConfidence = 0.3
			} else if cv > 0.10 {
				amountConfidence = 0.7
			}
		}

		occurrenceBoost := math.Min(float64(len(group))/5.0, 1.0)
		confidence := freqConfidence * amountConfidence * (0.5 + 0.5*occurrenceBoost)
		if confidence < 0.5 {
			continue
		}

		ids := make([]string, 0, len(group))
		for _, t := range group {
			ids = append(ids, t.ID)
		}

		last := group[len(group)-1]
		currency := currencyOf(group, "USD")
		results = append(results, model.DetectedSubscription{
			MerchantName:          merchantLabel(group[0]),
			NormalizedName:        name,
			Category:              mostCommonCategory(group),
			AverageAmount:         money.New(decimal.NewFromFloat(avgAmount).Round(money.Places), currency),
			Frequency:             freq,
			ConfidenceScore:       math.Round(confidence*100) / 100,
			OccurrenceCount:       len(group),
			LastSeen:              last.Date,
			ExpectedNext:          nextOccurrence(last.Date, freq),
			MatchedTransactionIDs: ids,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ConfidenceScore != results[j].ConfidenceScore {
			return results[i].ConfidenceScore > results[j].ConfidenceScore
		}
		return results[i].NormalizedName < results[j].NormalizedName
	})
	return results
}

// merchantKey prefers the note, which usually names the merchant, over the category.
func merchantKey(t model.Transaction) string {
	return strings.ToLower(strings.TrimSpace(merchantLabel(t)))
}

func merchantLabel(t model.Transaction) string {
	if n := strings.TrimSpace(t.Note); n != "" {
		return n
	}
	return strings.TrimSpace(t.Category)
}

func detectFrequency(intervals []float64) (model.Frequency, float64) {
	avgInterval := mean(intervals)

	patterns := []struct {
		freq     model.Frequency
		min, max float64
	}{
		{model.FrequencyWeekly, 5, 9},
		{model.FrequencyFortnightly, 12, 16},
		{model.FrequencyMonthly, 27, 34},
		{model.FrequencyQuarterly, 85, 95},
		{model.FrequencyAnnually, 355, 375},
	}

	for _, p := range patterns {
		if avgInterval >= p.min && avgInterval <= p.max {
			matchCount := 0
			for _, d := range intervals {
				if d >= p.min && d <= p.max {
					matchCount++
				}
			}
			return p.freq, float64(matchCount) / float64(len(intervals))
		}
	}
	return model.FrequencyUnspecified, 0
}

func sampleVariance(values []float64, avg float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - avg
		sumSq += d * d
	}
	return sumSq / float64(len(values)-1)
}

func nextOccurrence(last time.Time, freq model.Frequency) time.Time {
	switch freq {
	case model.FrequencyWeekly:
		return last.AddDate(0, 0, 7)
	case model.FrequencyFortnightly:
		return last.AddDate(0, 0, 14)
	case model.FrequencyQuarterly:
		return last.AddDate(0, 3, 0)
	case model.FrequencyAnnually:
		return last.AddDate(1, 0, 0)
	default:
		return last.AddDate(0, 1, 0)
	}
}

func mostCommonCategory(txs []model.Transaction) string {
	counts := make(map[string]int)
	for _, t := range txs {
		counts[t.Category]++
	}
	best, bestCount := "", 0
	for cat, n := range counts {
		if n > bestCount || (n == bestCount && cat < best) {
			best, bestCount = cat, n
		}
	}
	return best
}
