// Package model holds the value objects consumed and produced by the insights engine.
package model

import (
	"time"

	"github.com/castlemilk/finhealth/internal/money"
)

// Transaction is a single income or expense record.
// Amount is always a non-negative magnitude; IsExpense carries the direction.
type Transaction struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Date      time.Time   `json:"date"`
	Amount    money.Money `json:"amount"`
	IsExpense bool        `json:"isExpense"`
	Category  string      `json:"category"`
	Source    string      `json:"source"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Wallet is a wallet or budget snapshot. A zero Limit means the wallet carries no budget.
type Wallet struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Balance   money.Money `json:"balance"`
	Limit     money.Money `json:"limit"`
	Spent     money.Money `json:"spent"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// HasBudget reports whether the wallet has a positive spending limit.
func (w Wallet) HasBudget() bool {
	return w.Limit.IsPositive()
}

// HealthSnapshot is a periodically recorded score used for history charts.
type HealthSnapshot struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	HealthScore     float64   `json:"healthScore"`
	DisciplineIndex float64   `json:"disciplineIndex"`
	SavingsRate     float64   `json:"savingsRate"`
	TransactionCnt  int       `json:"transactionCount"`
	CreatedAt       time.Time `json:"createdAt"`
}
