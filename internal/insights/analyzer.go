package insights

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

// WalletProvider supplies wallet and budget snapshots for the budget rules.
type WalletProvider interface {
	GetAllWallets(ctx context.Context) ([]model.Wallet, error)
}

// WalletProviderFunc adapts a function to WalletProvider.
type WalletProviderFunc func(ctx context.Context) ([]model.Wallet, error)

func (f WalletProviderFunc) GetAllWallets(ctx context.Context) ([]model.Wallet, error) {
	return f(ctx)
}

// EnhancedInput holds the user parameters of a full analysis.
type EnhancedInput struct {
	Currency              string
	CurrentAge            int
	RetirementAge         int
	LifeExpectancy        int
	CurrentSavings        *money.Money
	DesiredMonthlyPension *money.Money
	PeriodMonths          int
}

// Analyzer composes the calculators into the full metrics pipeline.
type Analyzer struct {
	log logrus.FieldLogger
}

func NewAnalyzer(log logrus.FieldLogger) *Analyzer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analyzer{log: log.WithField("component", "insights")}
}

// CalculateEnhancedFinancialMetrics runs the independent calculators concurrently,
// then peer comparison (which needs the health score), then the recommendation rules.
// A wallet lookup failure is logged and treated as "no budget data". The only error
// returned is cancellation of ctx.
func (a *Analyzer) CalculateEnhancedFinancialMetrics(ctx context.Context, txs []model.Transaction, wallets WalletProvider, in EnhancedInput) (*model.FinancialHealthMetrics, error) {
	currency := in.Currency
	if currency == "" {
		currency = currencyOf(txs, "USD")
	}
	period := in.PeriodMonths
	if period <= 0 {
		period = DefaultPeriodMonths
	}

	var (
		balance    model.BalanceMetrics
		discipline float64
		health     float64
		breakdown  model.HealthScoreBreakdown
		retirement model.RetirementForecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		balance = CalculateBalanceMetrics(txs, currency, nil, nil)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		discipline = CalculateExpenseDisciplineIndex(txs, period)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		health, breakdown = CalculateFinancialHealthScore(txs, period)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		retirement = CalculateRetirementForecast(txs, RetirementInput{
			CurrentAge:            in.CurrentAge,
			RetirementAge:         in.RetirementAge,
			LifeExpectancy:        in.LifeExpectancy,
			CurrentSavings:        in.CurrentSavings,
			DesiredMonthlyPension: in.DesiredMonthlyPension,
			Currency:              currency,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	peer := CalculatePeerComparison(txs, health)

	var walletSnapshots []model.Wallet
	if wallets != nil {
		ws, err := wallets.GetAllWallets(ctx)
		if err != nil {
			a.log.WithError(err).Warn("wallet lookup failed; skipping budget rules")
		} else {
			walletSnapshots = ws
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs := GenerateRecommendations(RecommendationInput{
		Transactions:    txs,
		Wallets:         walletSnapshots,
		HealthScore:     health,
		DisciplineIndex: discipline,
		Retirement:      retirement,
		Peer:            peer,
		Currency:        currency,
	})

	a.log.WithFields(logrus.Fields{
		"transactions":    len(txs),
		"healthScore":     health,
		"disciplineIndex": discipline,
		"recommendations": len(recs),
	}).Debug("computed financial health metrics")

	return &model.FinancialHealthMetrics{
		HealthScore:          health,
		HealthScoreBreakdown: breakdown,
		DisciplineIndex:      discipline,
		Balance:              balance,
		RetirementForecast:   retirement,
		PeerComparison:       peer,
		Recommendations:      recs,
	}, nil
}
