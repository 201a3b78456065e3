package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

const (
	transactionsCollection = "transactions"
	walletsCollection      = "wallets"
	snapshotsCollection    = "healthSnapshots"
)

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// Documents keep amounts as integer cents plus an ISO currency code.
// NOTE: Field names are the Go struct field names (PascalCase); queries must match them.

type transactionDoc struct {
	ID          string
	UserID      string
	Date        time.Time
	AmountCents int64
	Currency    string
	IsExpense   bool
	Category    string
	Source      string
	Note        string
	CreatedAt   time.Time
}

func toTransactionDoc(t *model.Transaction) transactionDoc {
	return transactionDoc{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        t.Date,
		AmountCents: t.Amount.Cents(),
		Currency:    t.Amount.Currency,
		IsExpense:   t.IsExpense,
		Category:    t.Category,
		Source:      t.Source,
		Note:        t.Note,
		CreatedAt:   t.CreatedAt,
	}
}

func (d transactionDoc) toModel() *model.Transaction {
	return &model.Transaction{
		ID:        d.ID,
		UserID:    d.UserID,
		Date:      d.Date.UTC(),
		Amount:    money.FromCents(d.AmountCents, d.Currency),
		IsExpense: d.IsExpense,
		Category:  d.Category,
		Source:    d.Source,
		Note:      d.Note,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type walletDoc struct {
	ID           string
	UserID       string
	Name         string
	Category     string
	Currency     string
	BalanceCents int64
	LimitCents   int64
	SpentCents   int64
	UpdatedAt    time.Time
}

func toWalletDoc(w *model.Wallet) walletDoc {
	return walletDoc{
		ID:           w.ID,
		UserID:       w.UserID,
		Name:         w.Name,
		Category:     w.Category,
		Currency:     w.Balance.Currency,
		BalanceCents: w.Balance.Cents(),
		LimitCents:   w.Limit.Cents(),
		SpentCents:   w.Spent.Cents(),
		UpdatedAt:    w.UpdatedAt,
	}
}

func (d walletDoc) toModel() *model.Wallet {
	return &model.Wallet{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Category:  d.Category,
		Balance:   money.FromCents(d.BalanceCents, d.Currency),
		Limit:     money.FromCents(d.LimitCents, d.Currency),
		Spent:     money.FromCents(d.SpentCents, d.Currency),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// applyDateAwarePagination handles pagination for queries with date range filters.
// Firestore requires OrderBy on inequality fields first, so we use OrderBy("Date") + OrderBy(__name__).
// The cursor must include both the Date value and the document ID.
func (s *FirestoreStore) applyDateAwarePagination(ctx context.Context, query firestore.Query, collection string, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy("Date", firestore.Asc).OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		// Fetch the cursor document to get its Date value for composite StartAfter
		cursorDoc, err := s.client.Collection(collection).Doc(docID).Get(ctx)
		if err != nil {
			return query, fmt.Errorf("failed to fetch cursor document: %w", err)
		}
		dateVal := cursorDoc.Data()["Date"]
		query = query.StartAfter(dateVal, docID)
	}

	query = query.Limit(int(pageSize) + 1)
	return query, nil
}

// applyCursorPagination adds OrderBy + StartAfter + Limit to a query for cursor-based pagination.
// It fetches pageSize+1 docs so the caller can detect whether a next page exists.
func (s *FirestoreStore) applyCursorPagination(query firestore.Query, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		query = query.StartAfter(docID)
	}

	query = query.Limit(int(pageSize) + 1) // +1 to detect next page
	return query, nil
}

func notFound(kind, id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", kind, err)
}

// CreateTransaction stores a transaction document
func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	_, err := s.client.Collection(transactionsCollection).Doc(tx.ID).Set(ctx, toTransactionDoc(tx))
	return err
}

// GetTransaction retrieves a transaction from Firestore
func (s *FirestoreStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txID).Get(ctx)
	if err != nil {
		return nil, notFound("transaction", txID, err)
	}

	var d transactionDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return d.toModel(), nil
}

// DeleteTransaction deletes a transaction; deleting a missing document is ErrNotFound.
func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txID string) error {
	ref := s.client.Collection(transactionsCollection).Doc(txID)
	_, err := ref.Delete(ctx, firestore.Exists)
	if err != nil {
		return notFound("transaction", txID, err)
	}
	return nil
}

// ListTransactions lists a user's transactions, optionally within an inclusive date window
func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	query := s.client.Collection(transactionsCollection).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}
	if startDate != nil {
		query = query.Where("Date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("Date", "<=", *endDate)
	}

	var err error
	// When date range filters are present, Firestore requires OrderBy on the range
	// field first.
	if startDate != nil || endDate != nil {
		query, err = s.applyDateAwarePagination(ctx, query, transactionsCollection, pageSize, pageToken)
	} else {
		query, err = s.applyCursorPagination(query, pageSize, pageToken)
	}
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	// Detect next page
	var nextPageToken string
	if len(docs) > int(pageSize) {
		docs = docs[:pageSize]
		nextPageToken = EncodePageToken(docs[pageSize-1].Ref.ID)
	}

	txs := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var d transactionDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, "", fmt.Errorf("failed to parse transaction: %w", err)
		}
		txs = append(txs, d.toModel())
	}
	return txs, nextPageToken, nil
}

// ListUserIDs streams the UserID field of every transaction and returns the distinct set.
func (s *FirestoreStore) ListUserIDs(ctx context.Context) ([]string, error) {
	iter := s.client.Collection(transactionsCollection).Select("UserID").Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]struct{})
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		if uid, ok := doc.Data()["UserID"].(string); ok && uid != "" {
			seen[uid] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// UpsertWallet writes the full wallet document
func (s *FirestoreStore) UpsertWallet(ctx context.Context, wallet *model.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	wallet.UpdatedAt = time.Now().UTC()

	_, err := s.client.Collection(walletsCollection).Doc(wallet.ID).Set(ctx, toWalletDoc(wallet))
	return err
}

// ListWallets returns all of a user's wallets
func (s *FirestoreStore) ListWallets(ctx context.Context, userID string) ([]*model.Wallet, error) {
	docs, err := s.client.Collection(walletsCollection).
		Where("UserID", "==", userID).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	wallets := make([]*model.Wallet, 0, len(docs))
	for _, doc := range docs {
		var d walletDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to parse wallet: %w", err)
		}
		wallets = append(wallets, d.toModel())
	}
	return wallets, nil
}

// CreateHealthSnapshot stores a snapshot document
func (s *FirestoreStore) CreateHealthSnapshot(ctx context.Context, snapshot *model.HealthSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	_, err := s.client.Collection(snapshotsCollection).Doc(snapshot.ID).Set(ctx, snapshot)
	return err
}

// ListHealthSnapshots returns the newest snapshots first
func (s *FirestoreStore) ListHealthSnapshots(ctx context.Context, userID string, limit int) ([]*model.HealthSnapshot, error) {
	query := s.client.Collection(snapshotsCollection).
		Where("UserID", "==", userID).
		OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list health snapshots: %w", err)
	}

	snapshots := make([]*model.HealthSnapshot, 0, len(docs))
	for _, doc := range docs {
		var snap model.HealthSnapshot
		if err := doc.DataTo(&snap); err != nil {
			return nil, fmt.Errorf("failed to parse health snapshot: %w", err)
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, nil
}
