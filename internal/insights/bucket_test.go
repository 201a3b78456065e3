package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castlemilk/finhealth/internal/model"
)

func TestBucketKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		g    Granularity
		want string
	}{
		{"day", date(2025, 3, 7), Day, "2025-03-07"},
		{"month", date(2025, 3, 7), Month, "2025-03"},
		{"year", date(2025, 3, 7), Year, "2025"},
		{"first stride week", date(2025, 1, 1), Week, "2025-W01"},
		{"seventh day still week one", date(2025, 1, 7), Week, "2025-W01"},
		{"eighth day starts week two", date(2025, 1, 8), Week, "2025-W02"},
		{"leap year last day", date(2024, 12, 31), Week, "2024-W53"},
		{"iso week crosses year", date(2024, 12, 30), ISOWeek, "2025-W01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketKey(tt.date, tt.g))
		})
	}
}

func TestGroupBy(t *testing.T) {
	t.Run("empty input yields empty map", func(t *testing.T) {
		assert.Empty(t, GroupBy(nil, Month))
	})

	t.Run("groups by month", func(t *testing.T) {
		txs := []model.Transaction{
			expenseTx(date(2025, 1, 3), 10, "food"),
			expenseTx(date(2025, 1, 28), 20, "food"),
			expenseTx(date(2025, 2, 1), 30, "food"),
		}
		buckets := GroupBy(txs, Month)
		assert.Len(t, buckets, 2)
		assert.Len(t, buckets["2025-01"], 2)
		assert.Len(t, buckets["2025-02"], 1)
	})
}
