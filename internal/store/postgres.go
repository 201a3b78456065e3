package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

// Schema is applied by Migrate. Amounts are NUMERIC and travel as text so no
// precision is lost on the way to decimal.Decimal.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	date       TIMESTAMPTZ NOT NULL,
	amount     NUMERIC(20, 2) NOT NULL CHECK (amount >= 0),
	currency   CHAR(3) NOT NULL,
	is_expense BOOLEAN NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	note       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS transactions_user_date_idx ON transactions (user_id, date);

CREATE TABLE IF NOT EXISTS wallets (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	currency     CHAR(3) NOT NULL,
	balance      NUMERIC(20, 2) NOT NULL DEFAULT 0,
	limit_amount NUMERIC(20, 2) NOT NULL DEFAULT 0,
	spent        NUMERIC(20, 2) NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS wallets_user_idx ON wallets (user_id);

CREATE TABLE IF NOT EXISTS health_snapshots (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL,
	health_score      DOUBLE PRECISION NOT NULL,
	discipline_index  DOUBLE PRECISION NOT NULL,
	savings_rate      DOUBLE PRECISION NOT NULL,
	transaction_count INTEGER NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS health_snapshots_user_idx ON health_snapshots (user_id, created_at DESC);
`

// PostgresStore implements the Store interface on a pgx connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and verifies the connection.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func parseAmount(text, currency string) (money.Money, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return money.Money{}, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return money.New(d, strings.TrimSpace(currency)), nil
}

const transactionColumns = `id, user_id, date, amount::text, currency, is_expense, category, source, note, created_at`

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var (
		t                model.Transaction
		amount, currency string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Date, &amount, &currency, &t.IsExpense, &t.Category, &t.Source, &t.Note, &t.CreatedAt); err != nil {
		return nil, err
	}
	m, err := parseAmount(amount, currency)
	if err != nil {
		return nil, err
	}
	t.Amount = m
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (s *PostgresStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO transactions (id, user_id, date, amount, currency, is_expense, category, source, note, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10)`,
		tx.ID, tx.UserID, tx.Date, tx.Amount.Amount.StringFixed(money.Places), tx.Amount.Currency,
		tx.IsExpense, tx.Category, tx.Source, tx.Note, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, txID)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, txID string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, txID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	return nil
}

// ListTransactions uses keyset pagination on id, matching the other backends.
func (s *PostgresStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	var (
		conds = []string{"id > $1"}
		args  = []any{cursor}
	)
	if userID != "" {
		args = append(args, userID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if startDate != nil {
		args = append(args, *startDate)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if endDate != nil {
		args = append(args, *endDate)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	args = append(args, pageSize+1)
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY id LIMIT $%d`,
		transactionColumns, strings.Join(conds, " AND "), len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextPageToken string
	if len(txs) > int(pageSize) {
		txs = txs[:pageSize]
		nextPageToken = EncodePageToken(txs[pageSize-1].ID)
	}
	return txs, nextPageToken, nil
}

func (s *PostgresStore) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT user_id FROM transactions ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) UpsertWallet(ctx context.Context, wallet *model.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	wallet.UpdatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO wallets (id, user_id, name, category, currency, balance, limit_amount, spent, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8::numeric, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			currency = EXCLUDED.currency,
			balance = EXCLUDED.balance,
			limit_amount = EXCLUDED.limit_amount,
			spent = EXCLUDED.spent,
			updated_at = EXCLUDED.updated_at`,
		wallet.ID, wallet.UserID, wallet.Name, wallet.Category, wallet.Balance.Currency,
		wallet.Balance.Amount.StringFixed(money.Places),
		wallet.Limit.Amount.StringFixed(money.Places),
		wallet.Spent.Amount.StringFixed(money.Places),
		wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert wallet: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListWallets(ctx context.Context, userID string) ([]*model.Wallet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, category, currency, balance::text, limit_amount::text, spent::text, updated_at
		FROM wallets WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*model.Wallet
	for rows.Next() {
		var (
			w                     model.Wallet
			currency              string
			balance, limit, spent string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Category, &currency, &balance, &limit, &spent, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		if w.Balance, err = parseAmount(balance, currency); err != nil {
			return nil, err
		}
		if w.Limit, err = parseAmount(limit, currency); err != nil {
			return nil, err
		}
		if w.Spent, err = parseAmount(spent, currency); err != nil {
			return nil, err
		}
		w.UpdatedAt = w.UpdatedAt.UTC()
		wallets = append(wallets, &w)
	}
	return wallets, rows.Err()
}

func (s *PostgresStore) CreateHealthSnapshot(ctx context.Context, snapshot *model.HealthSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO health_snapshots (id, user_id, health_score, discipline_index, savings_rate, transaction_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		snapshot.ID, snapshot.UserID, snapshot.HealthScore, snapshot.DisciplineIndex,
		snapshot.SavingsRate, snapshot.TransactionCnt, snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert health snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListHealthSnapshots(ctx context.Context, userID string, limit int) ([]*model.HealthSnapshot, error) {
	query := `
		SELECT id, user_id, health_score, discipline_index, savings_rate, transaction_count, created_at
		FROM health_snapshots WHERE user_id = $1 ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list health snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*model.HealthSnapshot
	for rows.Next() {
		var snap model.HealthSnapshot
		if err := rows.Scan(&snap.ID, &snap.UserID, &snap.HealthScore, &snap.DisciplineIndex,
			&snap.SavingsRate, &snap.TransactionCnt, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan health snapshot: %w", err)
		}
		snap.CreatedAt = snap.CreatedAt.UTC()
		snapshots = append(snapshots, &snap)
	}
	return snapshots, rows.Err()
}
