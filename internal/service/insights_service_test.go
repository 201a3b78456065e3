package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/store"
)

func TestCreateTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)

	userID := "user-123"
	ctx := testContextWithUser(userID)

	t.Run("success rounds amount and defaults currency", func(t *testing.T) {
		mockStore.EXPECT().
			CreateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *model.Transaction) error {
				assert.Equal(t, userID, tx.UserID)
				assert.Equal(t, "USD", tx.Amount.Currency)
				assert.Equal(t, "12.35", tx.Amount.Amount.StringFixed(2))
				assert.Equal(t, "Groceries", tx.Category)
				return nil
			})

		resp, err := svc.CreateTransaction(ctx, connect.NewRequest(&CreateTransactionRequest{
			Date:      day(2024, time.March, 3),
			Amount:    decimal.RequireFromString("12.345"),
			IsExpense: true,
			Category:  "  Groceries ",
		}))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Msg.Transaction.ID)
	})

	tests := []struct {
		name  string
		req   *CreateTransactionRequest
		field string
	}{
		{
			name:  "missing date",
			req:   &CreateTransactionRequest{Amount: decimal.NewFromInt(1), Category: "Food"},
			field: "date",
		},
		{
			name:  "negative amount",
			req:   &CreateTransactionRequest{Date: day(2024, 1, 1), Amount: decimal.NewFromInt(-5), Category: "Food"},
			field: "amount",
		},
		{
			name:  "blank category",
			req:   &CreateTransactionRequest{Date: day(2024, 1, 1), Amount: decimal.NewFromInt(5), Category: "  "},
			field: "category",
		},
		{
			name:  "unknown currency",
			req:   &CreateTransactionRequest{Date: day(2024, 1, 1), Amount: decimal.NewFromInt(5), Category: "Food", Currency: "XXXX"},
			field: "currency",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(ctx, connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.CreateTransaction(context.Background(), connect.NewRequest(&CreateTransactionRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("other user", func(t *testing.T) {
		_, err := svc.CreateTransaction(ctx, connect.NewRequest(&CreateTransactionRequest{UserID: "someone-else"}))
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)
	ctx := testContextWithUser("owner")

	t.Run("owner deletes", func(t *testing.T) {
		mockStore.EXPECT().GetTransaction(gomock.Any(), "tx-1").
			Return(storedTx("tx-1", "owner", day(2024, 1, 1), 10, true, "Food"), nil)
		mockStore.EXPECT().DeleteTransaction(gomock.Any(), "tx-1").Return(nil)

		_, err := svc.DeleteTransaction(ctx, connect.NewRequest(&DeleteTransactionRequest{ID: "tx-1"}))
		require.NoError(t, err)
	})

	t.Run("not owner", func(t *testing.T) {
		mockStore.EXPECT().GetTransaction(gomock.Any(), "tx-2").
			Return(storedTx("tx-2", "intruder", day(2024, 1, 1), 10, true, "Food"), nil)

		_, err := svc.DeleteTransaction(ctx, connect.NewRequest(&DeleteTransactionRequest{ID: "tx-2"}))
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	})

	t.Run("missing", func(t *testing.T) {
		mockStore.EXPECT().GetTransaction(gomock.Any(), "tx-3").
			Return(nil, fmt.Errorf("transaction tx-3: %w", store.ErrNotFound))

		_, err := svc.DeleteTransaction(ctx, connect.NewRequest(&DeleteTransactionRequest{ID: "tx-3"}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}

func TestUpsertWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)
	ctx := testContextWithUser("user-1")

	t.Run("new wallet", func(t *testing.T) {
		mockStore.EXPECT().UpsertWallet(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, w *model.Wallet) error {
				assert.Equal(t, "user-1", w.UserID)
				assert.Equal(t, "USD", w.Limit.Currency)
				w.ID = "w-1"
				return nil
			})

		resp, err := svc.UpsertWallet(ctx, connect.NewRequest(&UpsertWalletRequest{
			Wallet: model.Wallet{Name: "Food", Category: "Food", Limit: usd(500), Spent: usd(100)},
		}))
		require.NoError(t, err)
		assert.Equal(t, "w-1", resp.Msg.Wallet.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockStore.EXPECT().ListWallets(gomock.Any(), "user-1").Return([]*model.Wallet{{ID: "w-1"}}, nil)

		_, err := svc.UpsertWallet(ctx, connect.NewRequest(&UpsertWalletRequest{
			Wallet: model.Wallet{ID: "w-other", Name: "Food"},
		}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := svc.UpsertWallet(ctx, connect.NewRequest(&UpsertWalletRequest{
			Wallet: model.Wallet{Name: "Food", Limit: usd(-1)},
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})
}

func TestGetEnhancedFinancialMetrics_Cache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)

	userID := "user-cache"
	ctx := testContextWithUser(userID)
	history := []*model.Transaction{
		storedTx("a", userID, day(2024, 1, 1), 4000, false, "Salary"),
		storedTx("b", userID, day(2024, 1, 5), 1000, true, "Groceries"),
	}

	// One computation serves both calls.
	mockStore.EXPECT().
		ListTransactions(gomock.Any(), userID, nil, nil, int32(1000), "").
		Return(history, "", nil).
		Times(1)
	mockStore.EXPECT().ListWallets(gomock.Any(), userID).Return(nil, nil).Times(1)

	req := &GetEnhancedFinancialMetricsRequest{RetirementParams: RetirementParams{CurrentAge: 30, RetirementAge: 65}}
	first, err := svc.GetEnhancedFinancialMetrics(ctx, connect.NewRequest(req))
	require.NoError(t, err)

	localized := *req
	localized.Locale = "ru"
	second, err := svc.GetEnhancedFinancialMetrics(ctx, connect.NewRequest(&localized))
	require.NoError(t, err)

	assert.Equal(t, first.Msg.Metrics.HealthScore, second.Msg.Metrics.HealthScore)
	require.Equal(t, len(first.Msg.Metrics.Recommendations), len(second.Msg.Metrics.Recommendations))
	for i := range first.Msg.Metrics.Recommendations {
		assert.Equal(t, first.Msg.Metrics.Recommendations[i].Code, second.Msg.Metrics.Recommendations[i].Code)
		assert.NotEmpty(t, second.Msg.Metrics.Recommendations[i].Title)
	}

	// A write invalidates the cached analysis.
	mockStore.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	_, err = svc.CreateTransaction(ctx, connect.NewRequest(&CreateTransactionRequest{
		Date: day(2024, 1, 20), Amount: decimal.NewFromInt(50), IsExpense: true, Category: "Dining",
	}))
	require.NoError(t, err)

	mockStore.EXPECT().
		ListTransactions(gomock.Any(), userID, nil, nil, int32(1000), "").
		Return(history, "", nil)
	mockStore.EXPECT().ListWallets(gomock.Any(), userID).Return(nil, nil)
	_, err = svc.GetEnhancedFinancialMetrics(ctx, connect.NewRequest(req))
	require.NoError(t, err)
}

func TestGetEnhancedFinancialMetrics_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestService(t, store.NewMockStore(ctrl))
	ctx := testContextWithUser("user-1")

	tests := []struct {
		name string
		req  *GetEnhancedFinancialMetricsRequest
	}{
		{"negative period", &GetEnhancedFinancialMetricsRequest{PeriodMonths: -1}},
		{"huge period", &GetEnhancedFinancialMetricsRequest{PeriodMonths: 1000}},
		{"negative age", &GetEnhancedFinancialMetricsRequest{RetirementParams: RetirementParams{CurrentAge: -3}}},
		{"negative savings", &GetEnhancedFinancialMetricsRequest{RetirementParams: RetirementParams{
			CurrentSavings: func() *decimal.Decimal { d := decimal.NewFromInt(-1); return &d }(),
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetEnhancedFinancialMetrics(ctx, connect.NewRequest(tt.req))
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestAnalysisHandlers_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)
	ctx := testContextWithUser("user-1")

	mockStore.EXPECT().
		ListTransactions(gomock.Any(), "user-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, "", errors.New("connection reset"))

	_, err := svc.GetFinancialHealthScore(ctx, connect.NewRequest(&GetFinancialHealthScoreRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to list transactions")
}

func TestGetHealthHistory_Limit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)
	ctx := testContextWithUser("user-1")

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"default", 0, defaultHistoryLimit},
		{"as requested", 7, 7},
		{"clamped", 5000, maxHistoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore.EXPECT().ListHealthSnapshots(gomock.Any(), "user-1", tt.want).Return(nil, nil)
			_, err := svc.GetHealthHistory(ctx, connect.NewRequest(&GetHealthHistoryRequest{Limit: tt.requested}))
			require.NoError(t, err)
		})
	}

	_, err := svc.GetHealthHistory(ctx, connect.NewRequest(&GetHealthHistoryRequest{Limit: -1}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestGetBalanceMetrics_InvalidWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestService(t, store.NewMockStore(ctrl))
	ctx := testContextWithUser("user-1")

	start := day(2024, 2, 1)
	end := day(2024, 1, 1)
	_, err := svc.GetBalanceMetrics(ctx, connect.NewRequest(&GetBalanceMetricsRequest{StartDate: &start, EndDate: &end}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
