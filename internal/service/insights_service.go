package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/castlemilk/finhealth/internal/auth"
	"github.com/castlemilk/finhealth/internal/i18n"
	"github.com/castlemilk/finhealth/internal/insights"
	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
	"github.com/castlemilk/finhealth/internal/store"
)

const instrumentationName = "github.com/castlemilk/finhealth/internal/service"

const (
	maxPeriodMonths     = 120
	maxAge              = 130
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

// Options configures an InsightsService.
type Options struct {
	// DefaultCurrency is used when neither the request nor the history names one.
	DefaultCurrency string
	// CacheMaxEntries bounds the analysis result cache.
	CacheMaxEntries int64
	Logger          logrus.FieldLogger
}

// InsightsService implements the InsightsService API
type InsightsService struct {
	store      store.Store
	analyzer   *insights.Analyzer
	translator *i18n.Translator
	cache      *resultCache
	log        logrus.FieldLogger
	currency   string

	tracer    trace.Tracer
	requests  metric.Int64Counter
	cacheHits metric.Int64Counter
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(s store.Store, opts Options) (*InsightsService, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	currency := opts.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}

	translator, err := i18n.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build message catalog: %w", err)
	}
	cache, err := newResultCache(opts.CacheMaxEntries)
	if err != nil {
		return nil, err
	}

	meter := otel.Meter(instrumentationName)
	requests, err := meter.Int64Counter("finhealth.insights.requests",
		metric.WithDescription("InsightsService calls by method"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	cacheHits, err := meter.Int64Counter("finhealth.insights.cache_hits",
		metric.WithDescription("Analyses served from the result cache"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache counter: %w", err)
	}

	return &InsightsService{
		store:      s,
		analyzer:   insights.NewAnalyzer(log),
		translator: translator,
		cache:      cache,
		log:        log.WithField("component", "service"),
		currency:   currency,
		tracer:     otel.Tracer(instrumentationName),
		requests:   requests,
		cacheHits:  cacheHits,
	}, nil
}

// Close releases the result cache.
func (s *InsightsService) Close() {
	s.cache.close()
}

func (s *InsightsService) startSpan(ctx context.Context, method, userID string) (context.Context, trace.Span) {
	s.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))
	return s.tracer.Start(ctx, "InsightsService."+method,
		trace.WithAttributes(attribute.String("user.id", userID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ============================================================================
// Transactions and wallets
// ============================================================================

// CreateTransaction validates and stores a single income or expense record.
func (s *InsightsService) CreateTransaction(ctx context.Context, req *connect.Request[CreateTransactionRequest]) (*connect.Response[CreateTransactionResponse], error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.buildTransaction(userID, req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, auth.WrapStoreError("create transaction", err)
	}
	s.cache.invalidate(userID)

	return connect.NewResponse(&CreateTransactionResponse{Transaction: tx}), nil
}

func (s *InsightsService) buildTransaction(userID string, msg *CreateTransactionRequest) (*model.Transaction, error) {
	if msg.Date.IsZero() {
		return nil, invalid("date", "is required")
	}
	if msg.Amount.IsNegative() {
		return nil, invalid("amount", "must not be negative, use isExpense for direction")
	}
	category := strings.TrimSpace(msg.Category)
	if category == "" {
		return nil, invalid("category", "is required")
	}
	currency, err := s.resolveCurrency(msg.Currency, nil)
	if err != nil {
		return nil, err
	}

	return &model.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      msg.Date.UTC(),
		Amount:    money.New(msg.Amount.Round(money.Places), currency),
		IsExpense: msg.IsExpense,
		Category:  category,
		Source:    strings.TrimSpace(msg.Source),
		Note:      msg.Note,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ListTransactions returns one page of the user's transactions.
func (s *InsightsService) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.Msg.StartDate, req.Msg.EndDate); err != nil {
		return nil, toConnectError(err)
	}

	txs, next, err := s.store.ListTransactions(ctx, userID, req.Msg.StartDate, req.Msg.EndDate,
		auth.NormalizePageSize(req.Msg.PageSize), req.Msg.PageToken)
	if err != nil {
		return nil, auth.WrapStoreError("list transactions", err)
	}

	return connect.NewResponse(&ListTransactionsResponse{
		Transactions:  txs,
		NextPageToken: next,
	}), nil
}

// DeleteTransaction removes a transaction owned by the caller.
func (s *InsightsService) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, toConnectError(invalid("id", "is required"))
	}

	tx, err := s.store.GetTransaction(ctx, req.Msg.ID)
	if err != nil {
		return nil, auth.WrapStoreError("get transaction", err)
	}
	if err := auth.RequireOwner(claims, tx.UserID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteTransaction(ctx, req.Msg.ID); err != nil {
		return nil, auth.WrapStoreError("delete transaction", err)
	}
	s.cache.invalidate(tx.UserID)

	return connect.NewResponse(&DeleteTransactionResponse{}), nil
}

// UpsertWallet creates a wallet, or replaces one the caller already owns.
func (s *InsightsService) UpsertWallet(ctx context.Context, req *connect.Request[UpsertWalletRequest]) (*connect.Response[UpsertWalletResponse], error) {
	wallet := req.Msg.Wallet
	userID, err := auth.ResolveUserID(ctx, wallet.UserID)
	if err != nil {
		return nil, err
	}
	wallet.UserID = userID

	if err := s.normalizeWallet(&wallet); err != nil {
		return nil, toConnectError(err)
	}

	if wallet.ID != "" {
		existing, err := s.store.ListWallets(ctx, userID)
		if err != nil {
			return nil, auth.WrapStoreError("list wallets", err)
		}
		if !containsWallet(existing, wallet.ID) {
			return nil, connect.NewError(connect.CodeNotFound,
				fmt.Errorf("wallet %s: %w", wallet.ID, store.ErrNotFound))
		}
	}

	if err := s.store.UpsertWallet(ctx, &wallet); err != nil {
		return nil, auth.WrapStoreError("upsert wallet", err)
	}
	s.cache.invalidate(userID)

	return connect.NewResponse(&UpsertWalletResponse{Wallet: &wallet}), nil
}

func (s *InsightsService) normalizeWallet(w *model.Wallet) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return invalid("wallet.name", "is required")
	}
	currency, err := s.resolveCurrency(w.Balance.Currency, nil)
	if err != nil {
		return err
	}
	for field, m := range map[string]money.Money{"wallet.limit": w.Limit, "wallet.spent": w.Spent} {
		if m.IsNegative() {
			return invalid(field, "must not be negative")
		}
	}
	w.Balance = money.New(w.Balance.Amount, currency).Round()
	w.Limit = money.New(w.Limit.Amount, currency).Round()
	w.Spent = money.New(w.Spent.Amount, currency).Round()
	return nil
}

func containsWallet(wallets []*model.Wallet, id string) bool {
	for _, w := range wallets {
		if w.ID == id {
			return true
		}
	}
	return false
}

// ListWallets returns the user's wallets and budgets.
func (s *InsightsService) ListWallets(ctx context.Context, req *connect.Request[ListWalletsRequest]) (*connect.Response[ListWalletsResponse], error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	wallets, err := s.store.ListWallets(ctx, userID)
	if err != nil {
		return nil, auth.WrapStoreError("list wallets", err)
	}
	return connect.NewResponse(&ListWalletsResponse{Wallets: wallets}), nil
}

// ============================================================================
// Analysis handlers
// ============================================================================

// GetBalanceMetrics sums income and expenses in an optional inclusive window.
func (s *InsightsService) GetBalanceMetrics(ctx context.Context, req *connect.Request[GetBalanceMetricsRequest]) (_ *connect.Response[GetBalanceMetricsResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetBalanceMetrics", userID)
	defer func() { endSpan(span, err) }()

	if err := validateWindow(req.Msg.StartDate, req.Msg.EndDate); err != nil {
		return nil, toConnectError(err)
	}
	txs, err := s.loadTransactions(ctx, userID, req.Msg.StartDate, req.Msg.EndDate)
	if err != nil {
		return nil, err
	}
	currency, err := s.resolveCurrency(req.Msg.Currency, txs)
	if err != nil {
		return nil, toConnectError(err)
	}

	metrics := insights.CalculateBalanceMetrics(txs, currency, req.Msg.StartDate, req.Msg.EndDate)
	return connect.NewResponse(&GetBalanceMetricsResponse{Metrics: metrics}), nil
}

// GetExpenseDisciplineIndex scores spending discipline with its sub-scores.
func (s *InsightsService) GetExpenseDisciplineIndex(ctx context.Context, req *connect.Request[GetExpenseDisciplineIndexRequest]) (_ *connect.Response[GetExpenseDisciplineIndexResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetExpenseDisciplineIndex", userID)
	defer func() { endSpan(span, err) }()

	period, err := periodMonths(req.Msg.PeriodMonths)
	if err != nil {
		return nil, toConnectError(err)
	}
	txs, err := s.loadTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	index, breakdown := insights.DisciplineIndexWithBreakdown(txs, period)
	return connect.NewResponse(&GetExpenseDisciplineIndexResponse{
		Index:     index,
		Breakdown: breakdown,
	}), nil
}

// GetFinancialHealthScore returns the 0-100 health score and its components.
func (s *InsightsService) GetFinancialHealthScore(ctx context.Context, req *connect.Request[GetFinancialHealthScoreRequest]) (_ *connect.Response[GetFinancialHealthScoreResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetFinancialHealthScore", userID)
	defer func() { endSpan(span, err) }()

	period, err := periodMonths(req.Msg.PeriodMonths)
	if err != nil {
		return nil, toConnectError(err)
	}
	txs, err := s.loadTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	score, breakdown := insights.CalculateFinancialHealthScore(txs, period)
	return connect.NewResponse(&GetFinancialHealthScoreResponse{
		Score:     score,
		Breakdown: breakdown,
	}), nil
}

// GetRetirementForecast projects retirement savings and renders the advisories.
func (s *InsightsService) GetRetirementForecast(ctx context.Context, req *connect.Request[GetRetirementForecastRequest]) (_ *connect.Response[GetRetirementForecastResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetRetirementForecast", userID)
	defer func() { endSpan(span, err) }()

	if err := validateRetirement(req.Msg.RetirementParams); err != nil {
		return nil, toConnectError(err)
	}
	txs, err := s.loadTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	currency, err := s.resolveCurrency(req.Msg.Currency, txs)
	if err != nil {
		return nil, toConnectError(err)
	}

	p := req.Msg.RetirementParams
	forecast := insights.CalculateRetirementForecast(txs, insights.RetirementInput{
		CurrentAge:            p.CurrentAge,
		RetirementAge:         p.RetirementAge,
		LifeExpectancy:        p.LifeExpectancy,
		CurrentSavings:        moneyPtr(p.CurrentSavings, currency),
		DesiredMonthlyPension: moneyPtr(p.DesiredMonthlyPension, currency),
		Currency:              currency,
	})

	tag := i18n.Match(req.Msg.Locale)
	advice := make([]string, len(forecast.Recommendations))
	for i, code := range forecast.Recommendations {
		advice[i] = s.translator.Advice(tag, code)
	}

	return connect.NewResponse(&GetRetirementForecastResponse{
		Forecast: forecast,
		Advice:   advice,
	}), nil
}

// GetPeerComparison benchmarks the user against their income bracket.
func (s *InsightsService) GetPeerComparison(ctx context.Context, req *connect.Request[GetPeerComparisonRequest]) (_ *connect.Response[GetPeerComparisonResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetPeerComparison", userID)
	defer func() { endSpan(span, err) }()

	txs, err := s.loadTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	health, _ := insights.CalculateFinancialHealthScore(txs, insights.DefaultPeriodMonths)
	comparison := insights.CalculatePeerComparison(txs, health)
	return connect.NewResponse(&GetPeerComparisonResponse{
		Comparison:  comparison,
		HealthScore: health,
	}), nil
}

// GetEnhancedFinancialMetrics runs the full analysis. Results are cached until the
// user's next write; recommendation text is rendered per request for the locale.
func (s *InsightsService) GetEnhancedFinancialMetrics(ctx context.Context, req *connect.Request[GetEnhancedFinancialMetricsRequest]) (_ *connect.Response[GetEnhancedFinancialMetricsResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetEnhancedFinancialMetrics", userID)
	defer func() { endSpan(span, err) }()

	period, err := periodMonths(req.Msg.PeriodMonths)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := validateRetirement(req.Msg.RetirementParams); err != nil {
		return nil, toConnectError(err)
	}

	input := *req.Msg
	input.UserID = userID
	input.Locale = ""
	key, err := s.cache.key(GetEnhancedFinancialMetricsProcedure, userID, input)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to build cache key: %w", err))
	}

	metrics, ok := s.cachedMetrics(ctx, key)
	if !ok {
		metrics, err = s.computeMetrics(ctx, userID, period, input)
		if err != nil {
			return nil, err
		}
		s.cache.set(key, metrics)
	}
	span.SetAttributes(attribute.Bool("cache.hit", ok))

	out := *metrics
	out.Recommendations = s.translator.Recommendations(i18n.Match(req.Msg.Locale), metrics.Recommendations)
	return connect.NewResponse(&GetEnhancedFinancialMetricsResponse{Metrics: &out}), nil
}

func (s *InsightsService) cachedMetrics(ctx context.Context, key string) (*model.FinancialHealthMetrics, bool) {
	v, ok := s.cache.get(key)
	if !ok {
		return nil, false
	}
	metrics, ok := v.(*model.FinancialHealthMetrics)
	if ok {
		s.cacheHits.Add(ctx, 1)
	}
	return metrics, ok
}

func (s *InsightsService) computeMetrics(ctx context.Context, userID string, period int, in GetEnhancedFinancialMetricsRequest) (*model.FinancialHealthMetrics, error) {
	txs, err := s.loadTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	currency, err := s.resolveCurrency(in.Currency, txs)
	if err != nil {
		return nil, toConnectError(err)
	}

	metrics, err := s.analyzer.CalculateEnhancedFinancialMetrics(ctx, txs, s.walletProvider(userID), insights.EnhancedInput{
		Currency:              currency,
		CurrentAge:            in.CurrentAge,
		RetirementAge:         in.RetirementAge,
		LifeExpectancy:        in.LifeExpectancy,
		CurrentSavings:        moneyPtr(in.CurrentSavings, currency),
		DesiredMonthlyPension: moneyPtr(in.DesiredMonthlyPension, currency),
		PeriodMonths:          period,
	})
	if err != nil {
		return nil, auth.WrapStoreError("calculate financial metrics", err)
	}
	return metrics, nil
}

// walletProvider exposes the user's stored wallets to the recommendation rules.
func (s *InsightsService) walletProvider(userID string) insights.WalletProvider {
	return insights.WalletProviderFunc(func(ctx context.Context) ([]model.Wallet, error) {
		stored, err := s.store.ListWallets(ctx, userID)
		if err != nil {
			return nil, err
		}
		wallets := make([]model.Wallet, 0, len(stored))
		for _, w := range stored {
			wallets = append(wallets, *w)
		}
		return wallets, nil
	})
}

// GetSavingsTips returns optimization tips and the detected recurring expenses.
func (s *InsightsService) GetSavingsTips(ctx context.Context, req *connect.Request[GetSavingsTipsRequest]) (_ *connect.Response[GetSavingsTipsResponse], err error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "GetSavingsTips", userID)
	defer func() { endSpan(span, err) }()

	txs, err := s.loadTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	tips := s.translator.Tips(i18n.Match(req.Msg.Locale), insights.GenerateSavingsTips(txs))
	return connect.NewResponse(&GetSavingsTipsResponse{
		Tips:          tips,
		Subscriptions: insights.DetectSubscriptions(txs),
	}), nil
}

// GetHealthHistory returns the recorded health snapshots, newest first.
func (s *InsightsService) GetHealthHistory(ctx context.Context, req *connect.Request[GetHealthHistoryRequest]) (*connect.Response[GetHealthHistoryResponse], error) {
	userID, err := auth.ResolveUserID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	switch {
	case limit < 0:
		return nil, toConnectError(invalid("limit", "must not be negative"))
	case limit == 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	snapshots, err := s.store.ListHealthSnapshots(ctx, userID, limit)
	if err != nil {
		return nil, auth.WrapStoreError("list health snapshots", err)
	}
	return connect.NewResponse(&GetHealthHistoryResponse{Snapshots: snapshots}), nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *InsightsService) loadTransactions(ctx context.Context, userID string, start, end *time.Time) ([]model.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "store.ListAllTransactions")
	defer span.End()

	txs, err := store.ListAllTransactions(ctx, s.store, userID, start, end)
	if err != nil {
		span.RecordError(err)
		return nil, auth.WrapStoreError("list transactions", err)
	}
	span.SetAttributes(attribute.Int("transactions", len(txs)))
	return txs, nil
}

// resolveCurrency picks the requested currency, else the history's, else the default.
func (s *InsightsService) resolveCurrency(requested string, txs []model.Transaction) (string, error) {
	if strings.TrimSpace(requested) != "" {
		code, err := money.ParseCurrency(requested)
		if err != nil {
			return "", invalid("currency", "%q is not an ISO-4217 code", requested)
		}
		return code, nil
	}
	for _, t := range txs {
		if t.Amount.Currency != "" {
			return t.Amount.Currency, nil
		}
	}
	return s.currency, nil
}

func periodMonths(requested int) (int, error) {
	switch {
	case requested < 0 || requested > maxPeriodMonths:
		return 0, invalid("periodMonths", "must be between 0 and %d", maxPeriodMonths)
	case requested == 0:
		return insights.DefaultPeriodMonths, nil
	default:
		return requested, nil
	}
}

func validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalid("endDate", "must not be before startDate")
	}
	return nil
}

func validateRetirement(p RetirementParams) error {
	if p.CurrentAge < 0 || p.CurrentAge > maxAge {
		return invalid("currentAge", "must be between 0 and %d", maxAge)
	}
	if p.RetirementAge < 0 || p.RetirementAge > maxAge {
		return invalid("retirementAge", "must be between 0 and %d", maxAge)
	}
	if p.LifeExpectancy < 0 || p.LifeExpectancy > maxAge {
		return invalid("lifeExpectancy", "must be between 0 and %d", maxAge)
	}
	if p.CurrentSavings != nil && p.CurrentSavings.IsNegative() {
		return invalid("currentSavings", "must not be negative")
	}
	if p.DesiredMonthlyPension != nil && p.DesiredMonthlyPension.IsNegative() {
		return invalid("desiredMonthlyPension", "must not be negative")
	}
	return nil
}

func moneyPtr(d *decimal.Decimal, currency string) *money.Money {
	if d == nil {
		return nil
	}
	m := money.New(*d, currency)
	return &m
}
