package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/castlemilk/finhealth/internal/auth"
	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
	"github.com/castlemilk/finhealth/internal/store"
)

// testContextWithUser creates a context with authenticated user claims for testing
func testContextWithUser(userID string) context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UID:   userID,
		Email: userID + "@test.local",
	})
}

// newTestService builds a service over s with a discarded logger.
func newTestService(t *testing.T, s store.Store) *InsightsService {
	t.Helper()
	log, _ := test.NewNullLogger()
	svc, err := NewInsightsService(s, Options{DefaultCurrency: "USD", CacheMaxEntries: 100, Logger: log})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usd(v int64) money.Money {
	return money.New(decimal.NewFromInt(v), "USD")
}

func storedTx(id, userID string, d time.Time, v int64, isExpense bool, category string) *model.Transaction {
	return &model.Transaction{
		ID:        id,
		UserID:    userID,
		Date:      d,
		Amount:    usd(v),
		IsExpense: isExpense,
		Category:  category,
		Source:    "Employer",
	}
}

// seedMonths stores a steady salary and spending history of n months for userID.
func seedMonths(t *testing.T, s store.Store, userID string, n int, income, expense int64) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		month := time.Month(i + 1)
		require.NoError(t, s.CreateTransaction(ctx, storedTx("", userID, day(2024, month, 1), income, false, "Salary")))
		require.NoError(t, s.CreateTransaction(ctx, storedTx("", userID, day(2024, month, 10), expense, true, "Groceries")))
	}
}
