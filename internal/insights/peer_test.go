package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/castlemilk/finhealth/internal/model"
)

func TestClassifyIncomeBracket(t *testing.T) {
	tests := []struct {
		income float64
		want   string
	}{
		{0, "<30k"},
		{29_999, "<30k"},
		{30_000, "30-50k"},
		{74_999.99, "50-75k"},
		{100_000, "100-150k"},
		{299_999, "200-300k"},
		{350_000, "300k+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIncomeBracket(tt.income), "income=%v", tt.income)
	}
}

func TestBenchmarksCoverEveryBracket(t *testing.T) {
	for _, b := range incomeBrackets {
		bench, ok := benchmarks[b.label]
		if assert.True(t, ok, b.label) {
			for _, c := range PeerCategories {
				assert.Contains(t, bench.categoryShare, c)
			}
		}
	}
}

func TestCalculatePeerComparison(t *testing.T) {
	t.Run("empty history returns the insufficient data sentinel", func(t *testing.T) {
		p := CalculatePeerComparison(nil, 0)

		assert.Equal(t, InsufficientData, p.IncomeRange)
		assert.Equal(t, 50.0, p.HealthScorePercentile)
		assert.Zero(t, p.PeerGroupSize)
		assert.Zero(t, p.SavingsRateVsPeers)
		assert.Len(t, p.ExpenseCategoriesVsPeers, len(PeerCategories))
		for _, v := range p.ExpenseCategoriesVsPeers {
			assert.Zero(t, v)
		}
	})

	t.Run("high saver in the middle bracket", func(t *testing.T) {
		txs := []model.Transaction{
			incomeTx(date(2025, 1, 1), 60_000, "Salary", "Employer"),
			expenseTx(date(2025, 1, 5), 30_000, "Groceries"),
		}
		p := CalculatePeerComparison(txs, 52)

		assert.Equal(t, "50-75k", p.IncomeRange)
		assert.InDelta(t, 41, p.SavingsRateVsPeers, 1e-9)
		assert.InDelta(t, 74, p.ExpenseCategoriesVsPeers[CategoryGroceries], 1e-9)
		assert.InDelta(t, -13, p.ExpenseCategoriesVsPeers[CategoryTransport], 1e-9)
		assert.Equal(t, 95.0, p.HealthScorePercentile)
		assert.Equal(t, 2650, p.PeerGroupSize)
	})

	t.Run("percentile stays within bounds", func(t *testing.T) {
		txs := []model.Transaction{
			incomeTx(date(2025, 1, 1), 1000, "Salary", "Employer"),
			expenseTx(date(2025, 1, 5), 5000, "Groceries"),
		}
		p := CalculatePeerComparison(txs, 0)
		assert.GreaterOrEqual(t, p.HealthScorePercentile, 1.0)
		assert.LessOrEqual(t, p.HealthScorePercentile, 99.0)
		assert.Equal(t, 10.0, p.HealthScorePercentile)
	})
}
