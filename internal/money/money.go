// Package money provides an exact decimal amount tagged with an ISO-4217 currency.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Places is the number of minor-unit digits results are rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Money is an immutable amount in a single currency.
// Arithmetic between values of different currencies keeps the receiver's currency;
// no conversion is ever performed.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// New returns a Money with the given amount and currency code.
func New(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}
}

// FromFloat builds a Money from a float, rounded to the minor unit.
func FromFloat(amount float64, currency string) Money {
	return New(decimal.NewFromFloat(amount).Round(Places), currency)
}

// FromCents builds a Money from an integer number of minor units.
func FromCents(cents int64, currency string) Money {
	return New(decimal.New(cents, -Places), currency)
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return New(decimal.Zero, currency)
}

// ParseCurrency validates an ISO-4217 code and returns it in canonical form.
func ParseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return unit.String(), nil
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}
}

// Mul scales the amount by factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Div divides the amount by divisor. Division by zero yields zero.
func (m Money) Div(divisor decimal.Decimal) Money {
	if divisor.IsZero() {
		return Zero(m.Currency)
	}
	return Money{Amount: m.Amount.DivRound(divisor, 10), Currency: m.Currency}
}

// Round rounds half away from zero to the minor unit.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(Places), Currency: m.Currency}
}

func (m Money) Abs() Money {
	return Money{Amount: m.Amount.Abs(), Currency: m.Currency}
}

// Cents returns the amount in minor units, rounded half away from zero.
func (m Money) Cents() int64 {
	return m.Amount.Mul(hundred).Round(0).IntPart()
}

// Float64 returns the nearest float64 of the amount.
func (m Money) Float64() float64 {
	return m.Amount.InexactFloat64()
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Cmp compares amounts only.
func (m Money) Cmp(o Money) int {
	return m.Amount.Cmp(o.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(Places) + " " + m.Currency
}

// Sum adds all values in the given currency.
func Sum(currency string, values ...Money) Money {
	total := Zero(currency)
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
