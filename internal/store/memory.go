package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/castlemilk/finhealth/internal/model"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu sync.RWMutex

	// Storage maps
	transactions map[string]*model.Transaction
	wallets      map[string]*model.Wallet
	snapshots    map[string]*model.HealthSnapshot
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*model.Transaction),
		wallets:      make(map[string]*model.Wallet),
		snapshots:    make(map[string]*model.HealthSnapshot),
	}
}

// paginateIDs applies cursor-based pagination to a sorted slice of IDs.
// Returns the paginated IDs and the next page token (empty if no more pages).
func paginateIDs(ids []string, pageSize int32, pageToken string) ([]string, string) {
	if pageSize <= 0 {
		pageSize = 100
	}

	sort.Strings(ids)

	// Find cursor position
	startIdx := 0
	if pageToken != "" {
		cursorID, err := DecodePageToken(pageToken)
		if err == nil {
			startIdx = sort.Search(len(ids), func(i int) bool { return ids[i] > cursorID })
		}
	}
	ids = ids[startIdx:]

	var nextToken string
	if int32(len(ids)) > pageSize {
		nextToken = EncodePageToken(ids[pageSize-1])
		ids = ids[:pageSize]
	}

	return ids, nextToken
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	stored := *tx
	m.transactions[tx.ID] = &stored
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[txID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}

	out := *tx
	return &out, nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[txID]; !ok {
		return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	delete(m.transactions, txID)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// First pass: collect matching IDs
	var matchingIDs []string
	for id, tx := range m.transactions {
		if userID != "" && tx.UserID != userID {
			continue
		}
		if startDate != nil && tx.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && tx.Date.After(*endDate) {
			continue
		}
		matchingIDs = append(matchingIDs, id)
	}

	paginatedIDs, nextToken := paginateIDs(matchingIDs, pageSize, pageToken)
	result := make([]*model.Transaction, 0, len(paginatedIDs))
	for _, id := range paginatedIDs {
		out := *m.transactions[id]
		result = append(result, &out)
	}
	return result, nextToken, nil
}

func (m *MemoryStore) ListUserIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, tx := range m.transactions {
		seen[tx.UserID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Wallet operations

func (m *MemoryStore) UpsertWallet(ctx context.Context, wallet *model.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	wallet.UpdatedAt = time.Now().UTC()

	stored := *wallet
	m.wallets[wallet.ID] = &stored
	return nil
}

func (m *MemoryStore) ListWallets(ctx context.Context, userID string) ([]*model.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Wallet
	for _, w := range m.wallets {
		if w.UserID != userID {
			continue
		}
		out := *w
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Health snapshot operations

func (m *MemoryStore) CreateHealthSnapshot(ctx context.Context, snapshot *model.HealthSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	stored := *snapshot
	m.snapshots[snapshot.ID] = &stored
	return nil
}

// ListHealthSnapshots returns the newest snapshots first.
func (m *MemoryStore) ListHealthSnapshots(ctx context.Context, userID string, limit int) ([]*model.HealthSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.HealthSnapshot
	for _, s := range m.snapshots {
		if s.UserID != userID {
			continue
		}
		out := *s
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
