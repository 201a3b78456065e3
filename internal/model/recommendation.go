package model

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type RecommendationCategory string

const (
	CategorySavings       RecommendationCategory = "SAVINGS"
	CategoryExpenses      RecommendationCategory = "EXPENSES"
	CategoryRetirement    RecommendationCategory = "RETIREMENT"
	CategoryIncome        RecommendationCategory = "INCOME"
	CategoryEmergencyFund RecommendationCategory = "EMERGENCY_FUND"
)

// Recommendation is an actionable advice item identified by a stable code.
// Params carry the values needed to render localized text.
type Recommendation struct {
	Code            string                 `json:"code"`
	Params          map[string]string      `json:"params,omitempty"`
	Priority        Priority               `json:"priority"`
	Category        RecommendationCategory `json:"category"`
	PotentialImpact float64                `json:"potentialImpact"`
	Title           string                 `json:"title,omitempty"`
	Description     string                 `json:"description,omitempty"`
}

// Tip is a lightweight advisory produced by the optimization heuristics.
type Tip struct {
	Code   string            `json:"code"`
	Params map[string]string `json:"params,omitempty"`
	Text   string            `json:"text,omitempty"`
}
