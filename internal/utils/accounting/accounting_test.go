package accounting

import (
	"testing"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound(t *testing.T) {
	tests := []struct {
		in     string
		digits int32
		want   string
	}{
		{"10.023456", 2, "10.02"},
		{"10.025", 2, "10.03"},
		{"-10.025", 2, "-10.03"},
		{"0.015", 2, "0.02"},
		{"1.5", 0, "2"},
		{"-1.5", 0, "-2"},
		{"123.4", 0, "123"},
	}
	for _, tt := range tests {
		assert.True(t, d(tt.want).Equal(Round(d(tt.in), tt.digits)), "Round(%s, %d)", tt.in, tt.digits)
	}
}

func TestRunningBalances(t *testing.T) {
	got := RunningBalances(d("0"), []decimal.Decimal{d("0.015"), d("0.015"), d("0.015")}, 2)
	require.Len(t, got, 3)
	// Each amount rounds to 0.02 before it is folded in.
	assert.True(t, d("0.02").Equal(got[0]))
	assert.True(t, d("0.04").Equal(got[1]))
	assert.True(t, d("0.06").Equal(got[2]))

	assert.True(t, d("-289.98").Equal(NextBalance(d("-300"), d("10.023456"), 2)))
}

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	c, err := NewConverter(domain.RateTable{BaseCode: "USD", Rates: map[string]decimal.Decimal{
		"USD": d("1"),
		"EUR": d("0.9"),
		"JPY": d("110"),
	}}, []domain.Currency{
		{CurrencyID: "usd", Code: "USD", DecimalDigits: 2},
		{CurrencyID: "eur", Code: "EUR", DecimalDigits: 2},
		{CurrencyID: "jpy", Code: "JPY", DecimalDigits: 0},
	})
	require.NoError(t, err)
	return c
}

func TestConverterTotal(t *testing.T) {
	c := newTestConverter(t)
	assert.Equal(t, "usd", c.Base().CurrencyID)

	total, err := c.Total([]CurrencyAmount{
		{CurrencyID: "usd", Amount: d("100")},
		{CurrencyID: "eur", Amount: d("90")},
		{CurrencyID: "jpy", Amount: d("4400")},
	})
	require.NoError(t, err)
	assert.True(t, d("240").Equal(total), "100 + 100 + 40, got %s", total)

	// The sum is rounded once, not each converted term.
	total, err = c.Total([]CurrencyAmount{{CurrencyID: "eur", Amount: d("0.004")}, {CurrencyID: "eur", Amount: d("0.004")}})
	require.NoError(t, err)
	assert.True(t, d("0.01").Equal(total), "got %s", total)

	_, err = c.Total([]CurrencyAmount{{CurrencyID: "xxx", Amount: d("1")}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewConverter_Errors(t *testing.T) {
	rates := domain.RateTable{BaseCode: "USD", Rates: map[string]decimal.Decimal{"USD": d("1")}}

	_, err := NewConverter(rates, []domain.Currency{{CurrencyID: "eur", Code: "EUR"}})
	assert.Error(t, err, "currency without a rate")

	_, err = NewConverter(domain.RateTable{BaseCode: "USD", Rates: map[string]decimal.Decimal{"USD": d("2")}}, nil)
	assert.Error(t, err, "base rate must be 1")

	_, err = NewConverter(domain.RateTable{BaseCode: "USD", Rates: map[string]decimal.Decimal{"USD": d("1"), "EUR": d("1")}}, []domain.Currency{{CurrencyID: "eur", Code: "EUR"}})
	assert.Error(t, err, "base currency missing from catalogue")
}
