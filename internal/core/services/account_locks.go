package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"golang.org/x/sync/semaphore"
)

// accountLocks provides one exclusive critical section per account.
// Several accounts are always acquired in ascending id order, so two mutations
// that need overlapping sets can never deadlock.
type accountLocks struct {
	mu      sync.Mutex
	sems    map[string]*semaphore.Weighted
	timeout time.Duration
}

func newAccountLocks(timeout time.Duration) *accountLocks {
	return &accountLocks{
		sems:    make(map[string]*semaphore.Weighted),
		timeout: timeout,
	}
}

func (l *accountLocks) sem(accountID string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sems[accountID]
	if !ok {
		s = semaphore.NewWeighted(1)
		l.sems[accountID] = s
	}
	return s
}

// lockOrder returns the distinct non-empty ids in acquisition order.
func lockOrder(accountIDs []string) []string {
	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Acquire locks every given account, waiting at most the configured timeout
// for all of them together. The returned func releases them.
func (l *accountLocks) Acquire(ctx context.Context, accountIDs ...string) (func(), error) {
	ids := lockOrder(accountIDs)

	waitCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	held := make([]*semaphore.Weighted, 0, len(ids))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Release(1)
		}
	}

	for _, id := range ids {
		s := l.sem(id)
		if err := s.Acquire(waitCtx, 1); err != nil {
			release()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: account %s is busy", apperrors.ErrConcurrencyConflict, id)
			}
			return nil, err
		}
		held = append(held, s)
	}
	return release, nil
}
