package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/castlemilk/finhealth/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for all database operations used by the service
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	GetTransaction(ctx context.Context, txID string) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, txID string) error
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error)

	// ListUserIDs returns every user that owns at least one transaction.
	ListUserIDs(ctx context.Context) ([]string, error)

	// Wallet operations
	UpsertWallet(ctx context.Context, wallet *model.Wallet) error
	ListWallets(ctx context.Context, userID string) ([]*model.Wallet, error)

	// Health snapshot operations
	CreateHealthSnapshot(ctx context.Context, snapshot *model.HealthSnapshot) error
	ListHealthSnapshots(ctx context.Context, userID string, limit int) ([]*model.HealthSnapshot, error)
}

// maxListPages bounds ListAllTransactions so a broken page token cannot loop forever.
const maxListPages = 1000

// ListAllTransactions pages through ListTransactions and returns every match by value.
func ListAllTransactions(ctx context.Context, s Store, userID string, startDate, endDate *time.Time) ([]model.Transaction, error) {
	var (
		all   []model.Transaction
		token string
	)
	for page := 0; page < maxListPages; page++ {
		txs, next, err := s.ListTransactions(ctx, userID, startDate, endDate, 1000, token)
		if err != nil {
			return nil, err
		}
		for _, t := range txs {
			all = append(all, *t)
		}
		if next == "" {
			return all, nil
		}
		token = next
	}
	return nil, fmt.Errorf("too many transaction pages for user %s", userID)
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
