package model

import (
	"time"

	"github.com/castlemilk/finhealth/internal/money"
)

type Frequency string

const (
	FrequencyUnspecified Frequency = ""
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyFortnightly Frequency = "FORTNIGHTLY"
	FrequencyMonthly     Frequency = "MONTHLY"
	FrequencyQuarterly   Frequency = "QUARTERLY"
	FrequencyAnnually    Frequency = "ANNUALLY"
)

// DetectedSubscription is a recurring expense pattern found in the history.
type DetectedSubscription struct {
	MerchantName          string      `json:"merchantName"`
	NormalizedName        string      `json:"normalizedName"`
	Category              string      `json:"category"`
	AverageAmount         money.Money `json:"averageAmount"`
	Frequency             Frequency   `json:"frequency"`
	ConfidenceScore       float64     `json:"confidenceScore"`
	OccurrenceCount       int         `json:"occurrenceCount"`
	LastSeen              time.Time   `json:"lastSeen"`
	ExpectedNext          time.Time   `json:"expectedNext"`
	MatchedTransactionIDs []string    `json:"matchedTransactionIds"`
}
