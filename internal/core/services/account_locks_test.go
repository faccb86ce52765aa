package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, lockOrder([]string{"c", "a", "", "b", "a"}))
	assert.Empty(t, lockOrder(nil))
}

func TestAccountLocks_TimeoutIsConflict(t *testing.T) {
	locks := newAccountLocks(20 * time.Millisecond)

	release, err := locks.Acquire(context.Background(), "acc-1")
	require.NoError(t, err)
	defer release()

	_, err = locks.Acquire(context.Background(), "acc-2", "acc-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConcurrencyConflict)

	// acc-2 must have been released again after the failed attempt.
	release2, err := locks.Acquire(context.Background(), "acc-2")
	require.NoError(t, err)
	release2()
}

func TestAccountLocks_OppositeOrderDoesNotDeadlock(t *testing.T) {
	locks := newAccountLocks(time.Second)

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release, err := locks.Acquire(context.Background(), "a", "b")
			if err != nil {
				errs <- err
				return
			}
			release()
		}()
		go func() {
			defer wg.Done()
			release, err := locks.Acquire(context.Background(), "b", "a")
			if err != nil {
				errs <- err
				return
			}
			release()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected lock error: %v", err)
	}
}

func TestAccountLocks_CancelledContext(t *testing.T) {
	locks := newAccountLocks(time.Second)
	release, err := locks.Acquire(context.Background(), "x")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locks.Acquire(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
