package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/castlemilk/finhealth/internal/insights"
	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/store"
)

// RefreshSnapshots records a HealthSnapshot for every user with transactions.
// A failure for one user is logged and does not stop the others; the failures are
// returned joined alongside the number of snapshots written.
func (s *InsightsService) RefreshSnapshots(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "InsightsService.RefreshSnapshots")
	defer span.End()

	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	var (
		written int
		errs    []error
	)
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := s.snapshotUser(ctx, userID); err != nil {
			s.log.WithError(err).WithField("user", userID).Warn("failed to record health snapshot")
			errs = append(errs, err)
			continue
		}
		written++
	}

	s.log.WithFields(logrus.Fields{
		"users":   len(userIDs),
		"written": written,
	}).Info("health snapshots refreshed")
	return written, errors.Join(errs...)
}

func (s *InsightsService) snapshotUser(ctx context.Context, userID string) error {
	txs, err := store.ListAllTransactions(ctx, s.store, userID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list transactions for %s: %w", userID, err)
	}

	health, _ := insights.CalculateFinancialHealthScore(txs, insights.DefaultPeriodMonths)
	currency, _ := s.resolveCurrency("", txs)
	balance := insights.CalculateBalanceMetrics(txs, currency, nil, nil)

	snapshot := &model.HealthSnapshot{
		UserID:          userID,
		HealthScore:     health,
		DisciplineIndex: insights.CalculateExpenseDisciplineIndex(txs, insights.DefaultPeriodMonths),
		SavingsRate:     balance.SavingsRate,
		TransactionCnt:  len(txs),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateHealthSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", userID, err)
	}
	return nil
}
