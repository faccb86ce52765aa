package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func byCode(currencies []domain.Currency) map[string]domain.Currency {
	out := make(map[string]domain.Currency, len(currencies))
	for _, c := range currencies {
		out[c.Code] = c
	}
	return out
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "rates.json", `{
		"base": "usd",
		"rates": {"USD": 1, "EUR": 0.9, "JPY": 110},
		"currencies": [
			{"id": "usd", "code": "USD", "name": "US Dollar"},
			{"id": "eur", "code": "eur", "name": "Euro"},
			{"id": "yen", "code": "JPY", "name": "Yen", "decimalDigits": 1}
		]
	}`)

	snap, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "USD", snap.Rates.BaseCode)
	assert.True(t, snap.Rates.Rates["EUR"].Equal(decimal.RequireFromString("0.9")))
	assert.True(t, snap.Rates.Rates["JPY"].Equal(decimal.NewFromInt(110)))

	cur := byCode(snap.Currencies)
	require.Len(t, cur, 3)
	assert.Equal(t, int32(2), cur["USD"].DecimalDigits)
	assert.Equal(t, "$", cur["USD"].Symbol)
	assert.Equal(t, "eur", cur["EUR"].CurrencyID)
	assert.Equal(t, int32(1), cur["JPY"].DecimalDigits, "explicit digits win over ISO")
	assert.Equal(t, "yen", cur["JPY"].CurrencyID)
}

func TestLoad_YAMLWithoutCatalogue(t *testing.T) {
	path := writeFile(t, "rates.yaml", "base: EUR\nrates:\n  EUR: 1\n  JPY: 120\n")

	snap, err := Load(path, "")
	require.NoError(t, err)

	cur := byCode(snap.Currencies)
	require.Len(t, cur, 2)
	assert.Equal(t, "jpy", cur["JPY"].CurrencyID)
	assert.Equal(t, int32(0), cur["JPY"].DecimalDigits)
}

func TestLoad_BaseOverride(t *testing.T) {
	path := writeFile(t, "rates.json", `{"base": "USD", "rates": {"USD": 1, "EUR": 0.5}}`)

	snap, err := Load(path, "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", snap.Rates.BaseCode)
	assert.True(t, snap.Rates.Rates["EUR"].Equal(decimal.NewFromInt(1)))
	assert.True(t, snap.Rates.Rates["USD"].Equal(decimal.NewFromInt(2)))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)

	noBaseRate := writeFile(t, "a.json", `{"base": "USD", "rates": {"EUR": 0.9}}`)
	_, err = Load(noBaseRate, "")
	assert.Error(t, err)

	badRate := writeFile(t, "b.json", `{"base": "USD", "rates": {"USD": 1, "EUR": -1}}`)
	_, err = Load(badRate, "")
	assert.Error(t, err)

	unknownOverride := writeFile(t, "c.json", `{"base": "USD", "rates": {"USD": 1}}`)
	_, err = Load(unknownOverride, "GBP")
	assert.Error(t, err)
}
