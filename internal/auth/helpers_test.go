package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlemilk/finhealth/internal/store"
)

func TestRequireAuth(t *testing.T) {
	t.Run("returns error when no claims in context", func(t *testing.T) {
		ctx := context.Background()
		claims, err := RequireAuth(ctx)
		assert.Nil(t, claims)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unauthenticated")
	})

	t.Run("returns claims when present in context", func(t *testing.T) {
		ctx := context.Background()
		expectedClaims := &UserClaims{UID: "user-123", Email: "test@example.com"}
		ctx = withUserClaims(ctx, expectedClaims)

		claims, err := RequireAuth(ctx)
		require.NoError(t, err)
		assert.Equal(t, expectedClaims.UID, claims.UID)
		assert.Equal(t, expectedClaims.Email, claims.Email)
	})
}

func TestRequireUserAccess(t *testing.T) {
	t.Run("returns error when no claims in context", func(t *testing.T) {
		ctx := context.Background()
		claims, err := RequireUserAccess(ctx, "user-123")
		assert.Nil(t, claims)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unauthenticated")
	})

	t.Run("returns error when user ID does not match", func(t *testing.T) {
		ctx := context.Background()
		ctx = withUserClaims(ctx, &UserClaims{UID: "user-123"})

		claims, err := RequireUserAccess(ctx, "user-456")
		assert.Nil(t, claims)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot access another user's resources")
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	})

	t.Run("returns claims when user ID matches", func(t *testing.T) {
		ctx := context.Background()
		ctx = withUserClaims(ctx, &UserClaims{UID: "user-123"})

		claims, err := RequireUserAccess(ctx, "user-123")
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UID)
	})

	t.Run("returns claims when user ID is empty", func(t *testing.T) {
		ctx := context.Background()
		ctx = withUserClaims(ctx, &UserClaims{UID: "user-123"})

		claims, err := RequireUserAccess(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UID)
	})
}

func TestResolveUserID(t *testing.T) {
	ctx := withUserClaims(context.Background(), &UserClaims{UID: "user-123"})

	uid, err := ResolveUserID(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)

	_, err = ResolveUserID(ctx, "user-456")
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestRequireOwner(t *testing.T) {
	claims := &UserClaims{UID: "user-123"}
	assert.NoError(t, RequireOwner(claims, "user-123"))
	assert.Error(t, RequireOwner(claims, "user-456"))
	assert.Error(t, RequireOwner(nil, "user-123"))
}

func TestNormalizePageSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int32
		expected int32
	}{
		{"zero returns default", 0, 100},
		{"negative returns default", -5, 100},
		{"valid size unchanged", 50, 50},
		{"max size unchanged", 1000, 1000},
		{"over max is clamped", 5000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePageSize(tt.input))
		})
	}
}

func TestWrapStoreError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapStoreError("get transaction", nil))
	})

	tests := []struct {
		name string
		err  error
		code connect.Code
	}{
		{"not found", fmt.Errorf("transaction tx-1: %w", store.ErrNotFound), connect.CodeNotFound},
		{"canceled", context.Canceled, connect.CodeCanceled},
		{"deadline", context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{"anything else", errors.New("connection refused"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapStoreError("get transaction", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
			assert.Contains(t, err.Error(), "failed to get transaction")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
