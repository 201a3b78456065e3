package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlemilk/finhealth/internal/model"
)

func tipCodes(tips []model.Tip) []string {
	var codes []string
	for _, t := range tips {
		codes = append(codes, t.Code)
	}
	return codes
}

func TestGenerateSavingsTips(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		assert.Empty(t, GenerateSavingsTips(nil))
	})

	t.Run("subscription without income", func(t *testing.T) {
		tips := GenerateSavingsTips(netflixHistory())
		codes := tipCodes(tips)

		assert.Contains(t, codes, TipSubscriptionDetected)
		assert.Contains(t, codes, TipNoIncome)
		assert.Contains(t, codes, TipDominantCategory)
		require.Equal(t, TipSubscriptionDetected, tips[0].Code)
		assert.Equal(t, "Netflix", tips[0].Params["merchant"])
		assert.Equal(t, string(model.FrequencyMonthly), tips[0].Params["frequency"])
	})

	t.Run("spending exceeds income", func(t *testing.T) {
		txs := []model.Transaction{
			incomeTx(date(2025, 1, 1), 1000, "Salary", "Employer"),
			expenseTx(date(2025, 1, 2), 1200.50, "Rent"),
		}
		tips := GenerateSavingsTips(txs)
		require.Len(t, tips, 1)
		assert.Equal(t, TipNoSavings, tips[0].Code)
		assert.Equal(t, "200.50", tips[0].Params["overspend"])
	})

	t.Run("many small purchases", func(t *testing.T) {
		txs := []model.Transaction{
			incomeTx(date(2025, 1, 1), 5000, "Salary", "Employer"),
			expenseTx(date(2025, 1, 1), 150, "Gadgets"),
		}
		for i := 0; i < 12; i++ {
			txs = append(txs, expenseTx(date(2025, 1, 2).AddDate(0, 0, i), 1, "Snacks"))
		}
		tips := GenerateSavingsTips(txs)

		var small *model.Tip
		for i := range tips {
			if tips[i].Code == TipSmallExpenses {
				small = &tips[i]
			}
		}
		require.NotNil(t, small)
		assert.Equal(t, "12", small.Params["count"])
		assert.Equal(t, "12.00", small.Params["total"])
		// housing and uncategorized spend never count as dominant
		assert.NotContains(t, tipCodes(tips), TipDominantCategory)
	})
}
