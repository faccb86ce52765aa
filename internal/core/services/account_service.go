package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	*LedgerEngine
	currencies portssvc.CurrencyReaderSvc
}

// NewAccountService creates a new account service
func NewAccountService(engine *LedgerEngine, currencies portssvc.CurrencyReaderSvc) portssvc.AccountSvcFacade {
	return &accountService{LedgerEngine: engine, currencies: currencies}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, input domain.AccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	currency, err := s.currencies.GetCurrencyByID(ctx, input.CurrencyID)
	if err != nil {
		s.LogError(ctx, err, "Invalid currency", slog.String("currency_id", input.CurrencyID))
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, input.CurrencyID)
	}

	now := time.Now().UTC()
	start := accounting.Round(input.StartBalance, currency.DecimalDigits)
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           name,
		CurrencyID:     currency.CurrencyID,
		StartBalance:   start,
		CurrentBalance: start,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	err = s.store.WithinTx(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.SaveAccount(ctx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("currency_id", account.CurrencyID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.store.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, patch domain.AccountPatch) (*domain.Account, error) {
	existing, err := s.store.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if patch.CurrencyID != nil && *patch.CurrencyID != existing.CurrencyID {
		return nil, fmt.Errorf("%w: the currency of an account cannot change", apperrors.ErrValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}

	var updated *domain.Account
	err = s.mutate(ctx, []string{accountID}, func(tx portsrepo.LedgerTx) error {
		account, err := tx.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		digits, err := s.recalc.DigitsFor(ctx, *account)
		if err != nil {
			return err
		}

		startChanged := false
		if patch.Name != nil {
			account.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.StartBalance != nil {
			start := accounting.Round(*patch.StartBalance, digits)
			startChanged = !start.Equal(account.StartBalance)
			account.StartBalance = start
		}
		account.LastUpdatedAt = time.Now().UTC()
		if err := tx.UpdateAccount(ctx, *account); err != nil {
			return err
		}
		if startChanged {
			// Every balance in the chain depends on the start balance.
			if _, _, err := s.recalc.Recalculate(ctx, tx, accountID, 0); err != nil {
				return err
			}
		}
		updated, err = tx.FindAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return updated, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.store.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	ops, err := s.store.FindOperationsOrdered(ctx, accountID)
	if err != nil {
		return err
	}
	lockIDs := []string{accountID}
	for _, op := range ops {
		if op.IsTransfer() {
			peer, err := s.store.FindOperationByID(ctx, *op.TransferPeerID)
			if err != nil {
				return fmt.Errorf("%w: transfer peer of %s: %v", apperrors.ErrInternal, op.OperationID, err)
			}
			lockIDs = append(lockIDs, peer.AccountID)
		}
	}
	locked := make(map[string]bool, len(lockIDs))
	for _, id := range lockIDs {
		locked[id] = true
	}

	removed := 0
	err = s.mutate(ctx, lockIDs, func(tx portsrepo.LedgerTx) error {
		ops, err := tx.FindOperationsOrdered(ctx, accountID)
		if err != nil {
			return err
		}
		var peers []domain.Operation
		for _, op := range ops {
			if op.IsTransfer() {
				peer, err := tx.FindOperationByID(ctx, *op.TransferPeerID)
				if err != nil {
					return err
				}
				if !locked[peer.AccountID] {
					return fmt.Errorf("%w: transfer %s changed concurrently", apperrors.ErrConcurrencyConflict, op.OperationID)
				}
				peers = append(peers, *peer)
			}
			if err := tx.DeleteOperation(ctx, op.OperationID); err != nil {
				return err
			}
		}
		if len(peers) > 0 {
			if _, err := s.recalc.Apply(ctx, tx, peers, nil); err != nil {
				return err
			}
		}
		removed = len(ops) + len(peers)
		return tx.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.Int("operations_removed", removed))
	return nil
}

func (s *accountService) RecalculateAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if _, err := s.store.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	var account *domain.Account
	err := s.mutate(ctx, []string{accountID}, func(tx portsrepo.LedgerTx) error {
		if _, _, err := s.recalc.Recalculate(ctx, tx, accountID, 0); err != nil {
			return err
		}
		var err error
		account, err = tx.FindAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to recalculate account", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account recalculated",
		slog.String("account_id", accountID),
		slog.String("current_balance", account.CurrentBalance.String()))
	return account, nil
}
