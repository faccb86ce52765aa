// Package rates loads the static currency catalogue and conversion rate table.
package rates

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type currencyEntry struct {
	ID            string `mapstructure:"id"`
	Code          string `mapstructure:"code"`
	Name          string `mapstructure:"name"`
	DecimalDigits *int32 `mapstructure:"decimalDigits"`
}

// Snapshot is the loaded catalogue.
type Snapshot struct {
	Currencies []domain.Currency
	Rates      domain.RateTable
}

// Load reads a rates file (JSON, YAML or TOML, chosen by extension). The file
// has the shape {base, rates: {CODE: rate}, currencies: [{id, code, name, decimalDigits}]}.
// baseOverride, when non-empty, replaces the file's base currency; the rates are
// then rebased so that the new base has rate 1.
func Load(path, baseOverride string) (*Snapshot, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", path, err)
	}

	var entries []currencyEntry
	if err := v.UnmarshalKey("currencies", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode currencies: %w", err)
	}

	table := domain.RateTable{
		BaseCode: strings.ToUpper(strings.TrimSpace(v.GetString("base"))),
		Rates:    make(map[string]decimal.Decimal),
	}
	// viper lower-cases map keys, codes are upper-cased back here
	for code, raw := range v.GetStringMapString("rates") {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q for %s: %w", raw, code, err)
		}
		table.Rates[strings.ToUpper(code)] = rate
	}

	if baseOverride != "" {
		rebased, err := Rebase(table, strings.ToUpper(baseOverride))
		if err != nil {
			return nil, err
		}
		table = rebased
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	currencies := make([]domain.Currency, 0, len(entries))
	for _, e := range entries {
		c, err := toCurrency(e)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	if len(currencies) == 0 {
		// No explicit catalogue: derive one from the rate table.
		for code := range table.Rates {
			c, err := toCurrency(currencyEntry{Code: code})
			if err != nil {
				return nil, err
			}
			currencies = append(currencies, c)
		}
	}

	slog.Info("Loaded currency catalogue", slog.String("file", path), slog.String("base", table.BaseCode), slog.Int("currencies", len(currencies)))
	return &Snapshot{Currencies: currencies, Rates: table}, nil
}

// Rebase expresses a rate table against another base currency in the table.
func Rebase(table domain.RateTable, base string) (domain.RateTable, error) {
	if base == table.BaseCode {
		return table, nil
	}
	pivot, ok := table.Rates[base]
	if !ok || !pivot.IsPositive() {
		return domain.RateTable{}, fmt.Errorf("base currency %s has no usable rate", base)
	}
	out := domain.RateTable{BaseCode: base, Rates: make(map[string]decimal.Decimal, len(table.Rates))}
	for code, r := range table.Rates {
		out.Rates[code] = r.DivRound(pivot, 16)
	}
	out.Rates[base] = decimal.NewFromInt(1)
	return out, nil
}

// toCurrency fills in whatever the entry leaves out from the ISO 4217 table.
func toCurrency(e currencyEntry) (domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(e.Code))
	if code == "" {
		return domain.Currency{}, fmt.Errorf("currency entry %q has no code", e.ID)
	}
	c := domain.Currency{
		CurrencyID: e.ID,
		Code:       code,
		Name:       e.Name,
	}
	if c.CurrencyID == "" {
		c.CurrencyID = strings.ToLower(code)
	}
	if c.Name == "" {
		c.Name = code
	}

	iso := money.GetCurrency(code)
	if iso != nil {
		c.Symbol = iso.Grapheme
		c.DecimalDigits = int32(iso.Fraction)
	} else {
		c.DecimalDigits = 2
	}
	if e.DecimalDigits != nil {
		if *e.DecimalDigits < 0 {
			return domain.Currency{}, fmt.Errorf("currency %s has negative decimal digits", code)
		}
		c.DecimalDigits = *e.DecimalDigits
	}
	return c, nil
}
