package pgsql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/balance_ledger/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to PGSQL_TEST_URL, which must point at a migrated database.
func newTestStore(t *testing.T) *PgxLedgerStore {
	t.Helper()
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set; skipping postgres store tests")
	}
	pool, err := database.NewPgxPool(context.Background(), url, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewLedgerStore(pool)
}

func TestPgxLedgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	accountID := uuid.NewString()
	fromID, toID := uuid.NewString(), uuid.NewString()
	peerAccountID := uuid.NewString()

	err := store.WithinTx(ctx, func(tx portsrepo.LedgerTx) error {
		for _, id := range []string{accountID, peerAccountID} {
			if err := tx.SaveAccount(ctx, domain.Account{AccountID: id, Name: "test " + id, CurrencyID: "usd", AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}}); err != nil {
				return err
			}
		}
		if err := tx.LockAccounts(ctx, []string{peerAccountID, accountID}); err != nil {
			return err
		}
		seq1, err := tx.NextSequenceNo(ctx)
		if err != nil {
			return err
		}
		seq2, err := tx.NextSequenceNo(ctx)
		if err != nil {
			return err
		}
		if err := tx.SaveOperation(ctx, domain.Operation{OperationID: fromID, AccountID: accountID, Amount: decimal.NewFromInt(-5), Created: now, SequenceNo: seq1, TransferPeerID: &toID}); err != nil {
			return err
		}
		if err := tx.SaveOperation(ctx, domain.Operation{OperationID: toID, AccountID: peerAccountID, Amount: decimal.NewFromInt(5), Created: now, SequenceNo: seq2, TransferPeerID: &fromID}); err != nil {
			return err
		}
		if err := tx.UpdateOperationBalances(ctx, map[string]decimal.Decimal{fromID: decimal.NewFromInt(-5), toID: decimal.NewFromInt(5)}); err != nil {
			return err
		}
		return tx.UpdateAccountBalance(ctx, accountID, decimal.NewFromInt(-5))
	})
	require.NoError(t, err)

	err = store.ReadSnapshot(ctx, func(r portsrepo.LedgerReader) error {
		chain, err := r.FindOperationsOrdered(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.True(t, chain[0].Balance.Equal(decimal.NewFromInt(-5)))
		assert.Equal(t, toID, *chain[0].TransferPeerID)

		acc, err := r.FindAccountByID(ctx, accountID)
		require.NoError(t, err)
		assert.True(t, acc.CurrentBalance.Equal(decimal.NewFromInt(-5)))
		return nil
	})
	require.NoError(t, err)

	err = store.WithinTx(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.LockAccounts(ctx, []string{uuid.NewString()})
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Clean up in FK order.
	err = store.WithinTx(ctx, func(tx portsrepo.LedgerTx) error {
		for _, id := range []string{fromID, toID} {
			if err := tx.DeleteOperation(ctx, id); err != nil {
				return err
			}
		}
		for _, id := range []string{accountID, peerAccountID} {
			if err := tx.DeleteAccount(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}
