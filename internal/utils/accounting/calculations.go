package accounting

import (
	"github.com/shopspring/decimal"
)

// Round rounds an amount to the given number of decimal digits, with halves
// rounded away from zero (10.025 -> 10.03, -10.025 -> -10.03).
func Round(amount decimal.Decimal, digits int32) decimal.Decimal {
	return amount.Round(digits)
}

// NextBalance folds one amount into a cumulative balance. The amount is rounded
// before it is added and the result is rounded again, so repeated additions
// never accumulate fractional drift.
func NextBalance(previous, amount decimal.Decimal, digits int32) decimal.Decimal {
	return Round(previous.Add(Round(amount, digits)), digits)
}

// RunningBalances computes the cumulative balance after each amount, starting from start.
func RunningBalances(start decimal.Decimal, amounts []decimal.Decimal, digits int32) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(amounts))
	current := Round(start, digits)
	for i, a := range amounts {
		current = NextBalance(current, a, digits)
		balances[i] = current
	}
	return balances
}
