package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/castlemilk/finhealth/internal/model"
)

// Request and response messages of finhealth.v1.InsightsService.
// An empty UserID always means the caller.

type CreateTransactionRequest struct {
	UserID    string          `json:"userId,omitempty"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	IsExpense bool            `json:"isExpense"`
	Category  string          `json:"category"`
	Source    string          `json:"source,omitempty"`
	Note      string          `json:"note,omitempty"`
}

type CreateTransactionResponse struct {
	Transaction *model.Transaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	UserID    string     `json:"userId,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	PageSize  int32      `json:"pageSize,omitempty"`
	PageToken string     `json:"pageToken,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions  []*model.Transaction `json:"transactions"`
	NextPageToken string               `json:"nextPageToken,omitempty"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct{}

type UpsertWalletRequest struct {
	Wallet model.Wallet `json:"wallet"`
}

type UpsertWalletResponse struct {
	Wallet *model.Wallet `json:"wallet"`
}

type ListWalletsRequest struct {
	UserID string `json:"userId,omitempty"`
}

type ListWalletsResponse struct {
	Wallets []*model.Wallet `json:"wallets"`
}

type GetBalanceMetricsRequest struct {
	UserID    string     `json:"userId,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Currency  string     `json:"currency,omitempty"`
}

type GetBalanceMetricsResponse struct {
	Metrics model.BalanceMetrics `json:"metrics"`
}

type GetExpenseDisciplineIndexRequest struct {
	UserID       string `json:"userId,omitempty"`
	PeriodMonths int    `json:"periodMonths,omitempty"`
}

type GetExpenseDisciplineIndexResponse struct {
	Index     float64                   `json:"index"`
	Breakdown model.DisciplineBreakdown `json:"breakdown"`
}

type GetFinancialHealthScoreRequest struct {
	UserID       string `json:"userId,omitempty"`
	PeriodMonths int    `json:"periodMonths,omitempty"`
}

type GetFinancialHealthScoreResponse struct {
	Score     float64                    `json:"score"`
	Breakdown model.HealthScoreBreakdown `json:"breakdown"`
}

// RetirementParams are the user inputs shared by the retirement and aggregate calls.
type RetirementParams struct {
	CurrentAge            int              `json:"currentAge"`
	RetirementAge         int              `json:"retirementAge"`
	LifeExpectancy        int              `json:"lifeExpectancy,omitempty"`
	CurrentSavings        *decimal.Decimal `json:"currentSavings,omitempty"`
	DesiredMonthlyPension *decimal.Decimal `json:"desiredMonthlyPension,omitempty"`
}

type GetRetirementForecastRequest struct {
	UserID   string `json:"userId,omitempty"`
	Currency string `json:"currency,omitempty"`
	Locale   string `json:"locale,omitempty"`
	RetirementParams
}

type GetRetirementForecastResponse struct {
	Forecast model.RetirementForecast `json:"forecast"`
	// Advice holds the localized text of Forecast.Recommendations, in the same order.
	Advice []string `json:"advice"`
}

type GetPeerComparisonRequest struct {
	UserID string `json:"userId,omitempty"`
}

type GetPeerComparisonResponse struct {
	Comparison  model.PeerComparison `json:"comparison"`
	HealthScore float64              `json:"healthScore"`
}

type GetEnhancedFinancialMetricsRequest struct {
	UserID       string `json:"userId,omitempty"`
	Currency     string `json:"currency,omitempty"`
	PeriodMonths int    `json:"periodMonths,omitempty"`
	Locale       string `json:"locale,omitempty"`
	RetirementParams
}

type GetEnhancedFinancialMetricsResponse struct {
	Metrics *model.FinancialHealthMetrics `json:"metrics"`
}

type GetSavingsTipsRequest struct {
	UserID string `json:"userId,omitempty"`
	Locale string `json:"locale,omitempty"`
}

type GetSavingsTipsResponse struct {
	Tips          []model.Tip                  `json:"tips"`
	Subscriptions []model.DetectedSubscription `json:"subscriptions"`
}

type GetHealthHistoryRequest struct {
	UserID string `json:"userId,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type GetHealthHistoryResponse struct {
	Snapshots []*model.HealthSnapshot `json:"snapshots"`
}
