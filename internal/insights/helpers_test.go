package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

var txSeq int

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(v float64) money.Money {
	return money.New(decimal.NewFromFloat(v), "USD")
}

func incomeTx(d time.Time, v float64, category, source string) model.Transaction {
	txSeq++
	return model.Transaction{
		ID:       fmt.Sprintf("tx-%d", txSeq),
		Date:     d,
		Amount:   amount(v),
		Category: category,
		Source:   source,
	}
}

func expenseTx(d time.Time, v float64, category string) model.Transaction {
	txSeq++
	return model.Transaction{
		ID:        fmt.Sprintf("tx-%d", txSeq),
		Date:      d,
		Amount:    amount(v),
		IsExpense: true,
		Category:  category,
		Source:    "card",
	}
}
