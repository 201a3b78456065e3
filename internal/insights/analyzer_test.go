package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlemilk/finhealth/internal/model"
)

func TestCalculateEnhancedFinancialMetrics(t *testing.T) {
	ctx := context.Background()
	in := EnhancedInput{Currency: "USD", CurrentAge: 35, RetirementAge: 65}

	t.Run("composes every calculator", func(t *testing.T) {
		txs := steadyHistory(1000, 750)
		a := NewAnalyzer(nil)

		m, err := a.CalculateEnhancedFinancialMetrics(ctx, txs, nil, in)
		require.NoError(t, err)

		score, breakdown := CalculateFinancialHealthScore(txs, DefaultPeriodMonths)
		assert.Equal(t, score, m.HealthScore)
		assert.Equal(t, breakdown, m.HealthScoreBreakdown)
		assert.Equal(t, CalculateExpenseDisciplineIndex(txs, DefaultPeriodMonths), m.DisciplineIndex)
		assert.Equal(t, CalculateBalanceMetrics(txs, "USD", nil, nil), m.Balance)
		assert.Equal(t, CalculatePeerComparison(txs, score), m.PeerComparison)
		assert.Equal(t, 30, m.RetirementForecast.YearsToRetirement)
	})

	t.Run("idempotent", func(t *testing.T) {
		txs := steadyHistory(1000, 750)
		a := NewAnalyzer(nil)
		m1, err := a.CalculateEnhancedFinancialMetrics(ctx, txs, nil, in)
		require.NoError(t, err)
		m2, err := a.CalculateEnhancedFinancialMetrics(ctx, txs, nil, in)
		require.NoError(t, err)
		assert.Equal(t, m1, m2)
	})

	t.Run("budget data feeds the rules", func(t *testing.T) {
		wallets := WalletProviderFunc(func(context.Context) ([]model.Wallet, error) {
			return []model.Wallet{wallet("food", 500, 600)}, nil
		})
		m, err := NewAnalyzer(nil).CalculateEnhancedFinancialMetrics(ctx, steadyHistory(1000, 750), wallets, in)
		require.NoError(t, err)
		_, ok := findRec(m.Recommendations, RecBudgetExceeded)
		assert.True(t, ok)
	})

	t.Run("wallet failure is logged and ignored", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		wallets := WalletProviderFunc(func(context.Context) ([]model.Wallet, error) {
			return nil, errors.New("wallet backend down")
		})

		m, err := NewAnalyzer(logger).CalculateEnhancedFinancialMetrics(ctx, steadyHistory(1000, 750), wallets, in)
		require.NoError(t, err)
		require.NotNil(t, m)
		for _, r := range m.Recommendations {
			assert.NotEqual(t, RecBudgetExceeded, r.Code)
			assert.NotEqual(t, RecBudgetApproaching, r.Code)
		}
		require.NotEmpty(t, hook.Entries)
		assert.Equal(t, logrus.WarnLevel, hook.Entries[0].Level)
	})

	t.Run("empty history", func(t *testing.T) {
		m, err := NewAnalyzer(nil).CalculateEnhancedFinancialMetrics(ctx, nil, nil, in)
		require.NoError(t, err)
		assert.Zero(t, m.HealthScore)
		assert.Zero(t, m.DisciplineIndex)
		assert.Equal(t, InsufficientData, m.PeerComparison.IncomeRange)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		m, err := NewAnalyzer(nil).CalculateEnhancedFinancialMetrics(cctx, steadyHistory(1000, 750), nil, in)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, m)
	})
}
