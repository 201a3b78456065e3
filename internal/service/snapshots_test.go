package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/store"
)

func TestRefreshSnapshots(t *testing.T) {
	memStore := store.NewMemoryStore()
	seedMonths(t, memStore, "alice", 3, 1000, 750)
	seedMonths(t, memStore, "bob", 2, 2000, 2500)
	svc := newTestService(t, memStore)
	ctx := context.Background()

	written, err := svc.RefreshSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	alice, err := memStore.ListHealthSnapshots(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, 6, alice[0].TransactionCnt)
	assert.InDelta(t, 25.0, alice[0].SavingsRate, 1e-9)
	assert.InDelta(t, 84.0, alice[0].HealthScore, 1e-9)

	bob, err := memStore.ListHealthSnapshots(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Zero(t, bob[0].SavingsRate)
	assert.Equal(t, 4, bob[0].TransactionCnt)
}

func TestRefreshSnapshots_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)

	mockStore.EXPECT().ListUserIDs(gomock.Any()).Return([]string{"ok", "broken"}, nil)
	mockStore.EXPECT().
		ListTransactions(gomock.Any(), "ok", nil, nil, int32(1000), "").
		Return([]*model.Transaction{storedTx("t1", "ok", day(2024, 1, 1), 100, false, "Salary")}, "", nil)
	mockStore.EXPECT().
		ListTransactions(gomock.Any(), "broken", nil, nil, int32(1000), "").
		Return(nil, "", errors.New("boom"))
	mockStore.EXPECT().
		CreateHealthSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap *model.HealthSnapshot) error {
			assert.Equal(t, "ok", snap.UserID)
			assert.Equal(t, 1, snap.TransactionCnt)
			return nil
		})

	written, err := svc.RefreshSnapshots(context.Background())
	assert.Equal(t, 1, written)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRefreshSnapshots_ListUsersFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := newTestService(t, mockStore)

	mockStore.EXPECT().ListUserIDs(gomock.Any()).Return(nil, errors.New("unavailable"))

	written, err := svc.RefreshSnapshots(context.Background())
	assert.Zero(t, written)
	assert.ErrorContains(t, err, "failed to list users")
}
