// Package insights turns a transaction history into financial health analytics.
// Every calculator is a pure function of its inputs.
package insights

import (
	"fmt"
	"time"

	"github.com/castlemilk/finhealth/internal/model"
)

// Granularity selects the bucket size used by GroupBy.
type Granularity int

const (
	Day Granularity = iota
	// Week walks from January 1 in fixed 7-day strides, so week 1 is Jan 1-7 regardless
	// of weekday and the last week of a year may be short.
	Week
	Month
	Year
	// ISOWeek uses ISO-8601 week numbering.
	ISOWeek
)

// BucketKey returns the key of the bucket containing t.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case Day:
		return t.Format("2006-01-02")
	case Week:
		return fmt.Sprintf("%04d-W%02d", t.Year(), (t.YearDay()-1)/7+1)
	case ISOWeek:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case Year:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// GroupBy buckets transactions by date. Order within a bucket follows the input.
func GroupBy(txs []model.Transaction, g Granularity) map[string][]model.Transaction {
	buckets := make(map[string][]model.Transaction)
	for _, t := range txs {
		key := BucketKey(t.Date, g)
		buckets[key] = append(buckets[key], t)
	}
	return buckets
}

// bucketTotals sums the magnitudes of each bucket.
func bucketTotals(buckets map[string][]model.Transaction) []float64 {
	totals := make([]float64, 0, len(buckets))
	for _, bucket := range buckets {
		totals = append(totals, sumMagnitudes(bucket))
	}
	return totals
}
