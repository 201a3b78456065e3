package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmeticIsExact(t *testing.T) {
	a := FromFloat(0.1, "USD")
	b := FromFloat(0.2, "USD")

	sum := a.Add(b)
	assert.True(t, sum.Amount.Equal(decimal.RequireFromString("0.3")), "got %s", sum.Amount)

	diff := sum.Sub(FromFloat(0.3, "USD"))
	assert.True(t, diff.IsZero())
}

func TestMoneyRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"-1.005", "-1.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m := New(decimal.RequireFromString(tt.in), "EUR").Round()
			assert.Equal(t, tt.want, m.Amount.StringFixed(2))
		})
	}
}

func TestMoneyDivByZero(t *testing.T) {
	m := FromCents(1000, "USD").Div(decimal.Zero)
	assert.True(t, m.IsZero())
	assert.Equal(t, "USD", m.Currency)
}

func TestMoneyCents(t *testing.T) {
	assert.Equal(t, int64(12345), FromFloat(123.45, "USD").Cents())
	assert.Equal(t, int64(-50), FromFloat(-0.5, "USD").Cents())
	assert.Equal(t, "123.45 USD", FromCents(12345, "usd").String())
}

func TestMoneyKeepsReceiverCurrency(t *testing.T) {
	m := FromCents(100, "USD").Add(FromCents(100, "EUR"))
	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, int64(200), m.Cents())
}

func TestParseCurrency(t *testing.T) {
	code, err := ParseCurrency(" rub ")
	require.NoError(t, err)
	assert.Equal(t, "RUB", code)

	_, err = ParseCurrency("XYZW")
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	total := Sum("USD", FromCents(150, "USD"), FromCents(250, "USD"))
	assert.Equal(t, int64(400), total.Cents())
	assert.True(t, Sum("USD").IsZero())
}
