package model

import (
	"encoding/json"
	"math"

	"github.com/castlemilk/finhealth/internal/money"
)

// BalanceMetrics summarizes income and spending over a window.
type BalanceMetrics struct {
	Income              money.Money `json:"income"`
	Expense             money.Money `json:"expense"`
	Balance             money.Money `json:"balance"`
	SavingsRate         float64     `json:"savingsRate"`
	MonthsOfSavings     float64     `json:"monthsOfSavings"`
	AverageDailyExpense money.Money `json:"averageDailyExpense"`
}

// HealthScoreBreakdown holds the four 0-25 components of the health score.
type HealthScoreBreakdown struct {
	SavingsRateScore     float64 `json:"savingsRateScore"`
	IncomeStabilityScore float64 `json:"incomeStabilityScore"`
	ExpenseControlScore  float64 `json:"expenseControlScore"`
	DiversificationScore float64 `json:"diversificationScore"`
}

// Total is the overall 0-100 health score.
func (b HealthScoreBreakdown) Total() float64 {
	return b.SavingsRateScore + b.IncomeStabilityScore + b.ExpenseControlScore + b.DiversificationScore
}

// DisciplineBreakdown holds the normalized [0,1] sub-scores of the discipline index.
type DisciplineBreakdown struct {
	Regularity       float64 `json:"regularity"`
	ImpulseControl   float64 `json:"impulseControl"`
	BudgetAdherence  float64 `json:"budgetAdherence"`
	PurchasePlanning float64 `json:"purchasePlanning"`
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Years is a duration in years that may be +Inf; it encodes as null when unreachable.
type Years float64

func (y Years) Reachable() bool {
	return !math.IsInf(float64(y), 0) && !math.IsNaN(float64(y))
}

func (y Years) MarshalJSON() ([]byte, error) {
	if !y.Reachable() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(y))
}

func (y *Years) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = Years(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*y = Years(f)
	return nil
}

// RetirementForecast is the outcome of a retirement projection.
type RetirementForecast struct {
	RequiredSavings      money.Money `json:"requiredSavings"`
	ProjectedSavings     money.Money `json:"projectedSavings"`
	SavingsGap           money.Money `json:"savingsGap"`
	MonthlySavingsNeeded money.Money `json:"monthlySavingsNeeded"`
	CurrentSavings       money.Money `json:"currentSavings"`
	MonthlySavings       money.Money `json:"monthlySavings"`
	RiskLevel            RiskLevel   `json:"riskLevel"`
	YearsToRetirement    int         `json:"yearsToRetirement"`
	RetirementYears      int         `json:"retirementYears"`
	YearsToGoal          Years       `json:"yearsToGoal"`
	Recommendations      []string    `json:"recommendations"`
}

// PeerComparison compares the user against a static benchmark for their income bracket.
type PeerComparison struct {
	IncomeRange              string             `json:"incomeRange"`
	SavingsRateVsPeers       float64            `json:"savingsRateVsPeers"`
	ExpenseCategoriesVsPeers map[string]float64 `json:"expenseCategoriesVsPeers"`
	HealthScorePercentile    float64            `json:"healthScorePercentile"`
	PeerGroupSize            int                `json:"peerGroupSize"`
}

// FinancialHealthMetrics is the aggregate result of a full analysis.
type FinancialHealthMetrics struct {
	HealthScore          float64              `json:"healthScore"`
	HealthScoreBreakdown HealthScoreBreakdown `json:"healthScoreBreakdown"`
	DisciplineIndex      float64              `json:"disciplineIndex"`
	Balance              BalanceMetrics       `json:"balance"`
	RetirementForecast   RetirementForecast   `json:"retirementForecast"`
	PeerComparison       PeerComparison       `json:"peerComparison"`
	Recommendations      []Recommendation     `json:"recommendations"`
}
