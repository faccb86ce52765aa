package services

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Recalculator keeps the derived balances of an account chain consistent.
// Every balance is a cache of a fold over the ordered amounts; the
// recalculator recomputes a suffix of the chain instead of patching
// individual rows.
type Recalculator struct {
	currencies portssvc.CurrencyReaderSvc
}

// NewRecalculator creates a recalculator that rounds with the decimal digits
// of each account's currency.
func NewRecalculator(currencies portssvc.CurrencyReaderSvc) *Recalculator {
	return &Recalculator{currencies: currencies}
}

// DigitsFor returns the rounding precision of an account.
func (r *Recalculator) DigitsFor(ctx context.Context, account domain.Account) (int32, error) {
	cur, err := r.currencies.GetCurrencyByID(ctx, account.CurrencyID)
	if err != nil {
		return 0, fmt.Errorf("currency of account %s: %w", account.AccountID, err)
	}
	return cur.DecimalDigits, nil
}

// Recalculate loads the ordered chain of an account and recomputes it from
// position from to the end. It returns the recomputed chain and the account's
// current balance.
func (r *Recalculator) Recalculate(ctx context.Context, tx portsrepo.LedgerTx, accountID string, from int) ([]domain.Operation, decimal.Decimal, error) {
	account, err := tx.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	chain, err := tx.FindOperationsOrdered(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	current, err := r.recompute(ctx, tx, *account, chain, from)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return chain, current, nil
}

// recompute folds chain[from:] in place, seeded from chain[from-1] or the start
// balance, persists the balances that changed and the account's current balance.
func (r *Recalculator) recompute(ctx context.Context, tx portsrepo.LedgerTx, account domain.Account, chain []domain.Operation, from int) (decimal.Decimal, error) {
	digits, err := r.DigitsFor(ctx, account)
	if err != nil {
		return decimal.Zero, err
	}
	from = min(max(from, 0), len(chain))

	var running decimal.Decimal
	if from == 0 {
		running = accounting.Round(account.StartBalance, digits)
	} else {
		running = chain[from-1].Balance
	}

	changed := make(map[string]decimal.Decimal)
	for i := from; i < len(chain); i++ {
		running = accounting.NextBalance(running, chain[i].Amount, digits)
		if !running.Equal(chain[i].Balance) {
			changed[chain[i].OperationID] = running
		}
		chain[i].Balance = running
	}
	if len(changed) > 0 {
		if err := tx.UpdateOperationBalances(ctx, changed); err != nil {
			return decimal.Zero, err
		}
	}

	current := accounting.Round(account.StartBalance, digits)
	if n := len(chain); n > 0 {
		current = chain[n-1].Balance
	}
	if !current.Equal(account.CurrentBalance) {
		if err := tx.UpdateAccountBalance(ctx, account.AccountID, current); err != nil {
			return decimal.Zero, err
		}
	}
	return current, nil
}

// chainState is the recomputed chain of one account after a mutation.
type chainState struct {
	Chain   []domain.Operation
	Current decimal.Decimal
}

// position returns the index and stored state of an operation in the chain.
func (c chainState) position(operationID string) (int, domain.Operation, bool) {
	i := domain.PositionOf(c.Chain, operationID)
	if i < 0 {
		return -1, domain.Operation{}, false
	}
	return i, c.Chain[i], true
}

// Apply replaces the operations in before with those in after and recalculates
// every account either set touches. For each account the pass starts at the
// earliest position any of the changed operations held before or holds after
// the change. Operations in before that are missing from after are deleted.
// All writes go through tx.
func (r *Recalculator) Apply(ctx context.Context, tx portsrepo.LedgerTx, before, after []domain.Operation) (map[string]chainState, error) {
	starts := make(map[string]int)
	var accountIDs []string
	touch := func(accountID string) {
		if _, ok := starts[accountID]; !ok {
			starts[accountID] = math.MaxInt
			accountIDs = append(accountIDs, accountID)
		}
	}
	for _, op := range before {
		touch(op.AccountID)
	}
	for _, op := range after {
		touch(op.AccountID)
	}
	slices.Sort(accountIDs)

	for _, accountID := range accountIDs {
		chain, err := tx.FindOperationsOrdered(ctx, accountID)
		if err != nil {
			return nil, err
		}
		for _, op := range before {
			if op.AccountID != accountID {
				continue
			}
			if p := domain.PositionOf(chain, op.OperationID); p >= 0 {
				starts[accountID] = min(starts[accountID], p)
			}
		}
	}

	kept := make(map[string]bool, len(after))
	for _, op := range after {
		kept[op.OperationID] = true
	}
	for _, op := range before {
		if !kept[op.OperationID] {
			if err := tx.DeleteOperation(ctx, op.OperationID); err != nil {
				return nil, err
			}
		}
	}
	for _, op := range after {
		if err := tx.SaveOperation(ctx, op); err != nil {
			return nil, err
		}
	}

	states := make(map[string]chainState, len(accountIDs))
	for _, accountID := range accountIDs {
		account, err := tx.FindAccountByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		chain, err := tx.FindOperationsOrdered(ctx, accountID)
		if err != nil {
			return nil, err
		}
		for _, op := range after {
			if op.AccountID != accountID {
				continue
			}
			if p := domain.PositionOf(chain, op.OperationID); p >= 0 {
				starts[accountID] = min(starts[accountID], p)
			}
		}
		current, err := r.recompute(ctx, tx, *account, chain, starts[accountID])
		if err != nil {
			return nil, err
		}
		states[accountID] = chainState{Chain: chain, Current: current}
	}
	return states, nil
}
