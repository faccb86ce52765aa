package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transferService implements the TransferSvcFacade interface.
// A transfer is two operations linked through TransferPeerID: a negative
// from-leg without category and a positive to-leg.
type transferService struct {
	*LedgerEngine
}

// NewTransferService creates a new transfer service on top of a ledger engine
func NewTransferService(engine *LedgerEngine) portssvc.TransferSvcFacade {
	return &transferService{LedgerEngine: engine}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// transferAmount rounds a leg magnitude and rejects anything that is not positive.
func transferAmount(amount decimal.Decimal, digits int32, leg string) (decimal.Decimal, error) {
	rounded := accounting.Round(amount, digits)
	if !rounded.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be positive", apperrors.ErrValidation, leg)
	}
	return rounded, nil
}

func (s *transferService) AddTransfer(ctx context.Context, input domain.TransferInput) (*domain.TransferResult, error) {
	if input.Created.IsZero() {
		return nil, fmt.Errorf("%w: created is required", apperrors.ErrValidation)
	}
	if input.AccountFrom == input.AccountTo {
		return nil, fmt.Errorf("%w: transfer needs two different accounts", apperrors.ErrValidation)
	}
	from, err := s.requireAccount(ctx, input.AccountFrom)
	if err != nil {
		return nil, err
	}
	to, err := s.requireAccount(ctx, input.AccountTo)
	if err != nil {
		return nil, err
	}
	fromDigits, err := s.recalc.DigitsFor(ctx, *from)
	if err != nil {
		return nil, err
	}
	toDigits, err := s.recalc.DigitsFor(ctx, *to)
	if err != nil {
		return nil, err
	}
	amountFrom, err := transferAmount(input.AmountFrom, fromDigits, "amountFrom")
	if err != nil {
		return nil, err
	}
	amountTo, err := transferAmount(input.AmountTo, toDigits, "amountTo")
	if err != nil {
		return nil, err
	}

	var result *domain.TransferResult
	err = s.mutate(ctx, []string{from.AccountID, to.AccountID}, func(tx portsrepo.LedgerTx) error {
		fromSeq, err := tx.NextSequenceNo(ctx)
		if err != nil {
			return err
		}
		toSeq, err := tx.NextSequenceNo(ctx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		fromID, toID := uuid.NewString(), uuid.NewString()
		fromLeg := domain.Operation{
			OperationID:    fromID,
			AccountID:      from.AccountID,
			Amount:         amountFrom.Neg(),
			Created:        input.Created.UTC(),
			SequenceNo:     fromSeq,
			TransferPeerID: &toID,
			AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		toLeg := domain.Operation{
			OperationID:    toID,
			AccountID:      to.AccountID,
			CategoryID:     normalizeCategory(input.CategoryID),
			Amount:         amountTo,
			Created:        input.Created.UTC(),
			SequenceNo:     toSeq,
			TransferPeerID: &fromID,
			AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}

		states, err := s.recalc.Apply(ctx, tx, nil, []domain.Operation{fromLeg, toLeg})
		if err != nil {
			return err
		}
		result, err = transferResult(states, fromLeg, toLeg)
		if err != nil {
			return err
		}
		// Adding reports each account's current balance.
		result.Balance = states[from.AccountID].Current
		result.TransferBalance = states[to.AccountID].Current
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add transfer",
			slog.String("account_from", input.AccountFrom),
			slog.String("account_to", input.AccountTo))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer added",
		slog.String("from_operation_id", result.From.OperationID),
		slog.String("to_operation_id", result.To.OperationID))
	return result, nil
}

func (s *transferService) UpdateTransfer(ctx context.Context, operationID string, patch domain.TransferPatch) (*domain.TransferResult, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
	}
	if patch.Created != nil && patch.Created.IsZero() {
		return nil, fmt.Errorf("%w: created must not be empty", apperrors.ErrValidation)
	}

	fromLeg, toLeg, err := s.loadTransfer(ctx, s.store, operationID)
	if err != nil {
		return nil, err
	}

	fromAccountID, toAccountID := fromLeg.AccountID, toLeg.AccountID
	if patch.AccountFrom != nil {
		fromAccountID = *patch.AccountFrom
	}
	if patch.AccountTo != nil {
		toAccountID = *patch.AccountTo
	}
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: transfer needs two different accounts", apperrors.ErrValidation)
	}
	fromAccount, err := s.requireAccount(ctx, fromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount, err := s.requireAccount(ctx, toAccountID)
	if err != nil {
		return nil, err
	}
	fromDigits, err := s.recalc.DigitsFor(ctx, *fromAccount)
	if err != nil {
		return nil, err
	}
	toDigits, err := s.recalc.DigitsFor(ctx, *toAccount)
	if err != nil {
		return nil, err
	}

	amountFrom := fromLeg.Amount.Neg()
	if patch.AmountFrom != nil {
		amountFrom = *patch.AmountFrom
	}
	if amountFrom, err = transferAmount(amountFrom, fromDigits, "amountFrom"); err != nil {
		return nil, err
	}
	amountTo := toLeg.Amount
	if patch.AmountTo != nil {
		amountTo = *patch.AmountTo
	}
	if amountTo, err = transferAmount(amountTo, toDigits, "amountTo"); err != nil {
		return nil, err
	}

	lockIDs := []string{fromLeg.AccountID, toLeg.AccountID, fromAccountID, toAccountID}
	var result *domain.TransferResult
	err = s.mutate(ctx, lockIDs, func(tx portsrepo.LedgerTx) error {
		curFrom, err := reloadUnchanged(ctx, tx, fromLeg)
		if err != nil {
			return err
		}
		curTo, err := reloadUnchanged(ctx, tx, toLeg)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		newFrom, newTo := *curFrom, *curTo
		newFrom.AccountID, newTo.AccountID = fromAccountID, toAccountID
		newFrom.Amount, newTo.Amount = amountFrom.Neg(), amountTo
		if patch.Created != nil {
			newFrom.Created = patch.Created.UTC()
			newTo.Created = patch.Created.UTC()
		}
		newFrom.LastUpdatedAt, newTo.LastUpdatedAt = now, now

		states, err := s.recalc.Apply(ctx, tx,
			[]domain.Operation{*curFrom, *curTo},
			[]domain.Operation{newFrom, newTo})
		if err != nil {
			return err
		}
		// Updating reports each leg's own balance at its new position.
		result, err = transferResult(states, newFrom, newTo)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update transfer", slog.String("operation_id", operationID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer updated",
		slog.String("from_operation_id", result.From.OperationID),
		slog.String("to_operation_id", result.To.OperationID))
	return result, nil
}

func (s *transferService) DeleteTransfer(ctx context.Context, operationID string) (*domain.TransferResult, error) {
	op, err := s.store.FindOperationByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	result, err := s.deleteTransfer(ctx, *op)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transfer", slog.String("operation_id", operationID))
		return nil, err
	}
	s.LogInfo(ctx, "Transfer deleted",
		slog.String("from_operation_id", result.From.OperationID),
		slog.String("to_operation_id", result.To.OperationID))
	return result, nil
}

// loadTransfer returns the from and to legs of the transfer that operationID
// belongs to. Either leg's id is accepted.
func (e *LedgerEngine) loadTransfer(ctx context.Context, r portsrepo.OperationReader, operationID string) (domain.Operation, domain.Operation, error) {
	op, err := r.FindOperationByID(ctx, operationID)
	if err != nil {
		return domain.Operation{}, domain.Operation{}, err
	}
	if !op.IsTransfer() {
		return domain.Operation{}, domain.Operation{}, fmt.Errorf("%w: operation %s is not a transfer", apperrors.ErrValidation, operationID)
	}
	peer, err := r.FindOperationByID(ctx, *op.TransferPeerID)
	if err != nil {
		return domain.Operation{}, domain.Operation{}, fmt.Errorf("%w: transfer peer of %s: %v", apperrors.ErrInternal, operationID, err)
	}
	if op.Amount.IsNegative() {
		return *op, *peer, nil
	}
	return *peer, *op, nil
}

// deleteTransfer removes both legs of the transfer that op belongs to in one
// transaction and returns both accounts' current balances.
func (e *LedgerEngine) deleteTransfer(ctx context.Context, op domain.Operation) (*domain.TransferResult, error) {
	fromLeg, toLeg, err := e.loadTransfer(ctx, e.store, op.OperationID)
	if err != nil {
		return nil, err
	}

	var result *domain.TransferResult
	err = e.mutate(ctx, []string{fromLeg.AccountID, toLeg.AccountID}, func(tx portsrepo.LedgerTx) error {
		curFrom, err := reloadUnchanged(ctx, tx, fromLeg)
		if err != nil {
			return err
		}
		curTo, err := reloadUnchanged(ctx, tx, toLeg)
		if err != nil {
			return err
		}
		states, err := e.recalc.Apply(ctx, tx, []domain.Operation{*curFrom, *curTo}, nil)
		if err != nil {
			return err
		}
		result = &domain.TransferResult{
			From:            *curFrom,
			To:              *curTo,
			Balance:         states[curFrom.AccountID].Current,
			TransferBalance: states[curTo.AccountID].Current,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// transferResult looks both legs up in their recomputed chains.
func transferResult(states map[string]chainState, fromLeg, toLeg domain.Operation) (*domain.TransferResult, error) {
	_, from, ok := states[fromLeg.AccountID].position(fromLeg.OperationID)
	if !ok {
		return nil, fmt.Errorf("%w: transfer leg %s missing", apperrors.ErrInternal, fromLeg.OperationID)
	}
	_, to, ok := states[toLeg.AccountID].position(toLeg.OperationID)
	if !ok {
		return nil, fmt.Errorf("%w: transfer leg %s missing", apperrors.ErrInternal, toLeg.OperationID)
	}
	return &domain.TransferResult{
		From:            from,
		To:              to,
		Balance:         from.Balance,
		TransferBalance: to.Balance,
	}, nil
}
