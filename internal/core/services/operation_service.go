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
)

// MaxListLimit caps the page size of operation listings.
const MaxListLimit = 1000

// operationService implements the OperationSvcFacade interface
type operationService struct {
	*LedgerEngine
}

// NewOperationService creates a new operation service on top of a ledger engine
func NewOperationService(engine *LedgerEngine) portssvc.OperationSvcFacade {
	return &operationService{LedgerEngine: engine}
}

// Ensure operationService implements the OperationSvcFacade interface
var _ portssvc.OperationSvcFacade = (*operationService)(nil)

func (s *operationService) AddOperation(ctx context.Context, input domain.OperationInput) (*domain.OperationResult, error) {
	if input.Created.IsZero() {
		return nil, fmt.Errorf("%w: created is required", apperrors.ErrValidation)
	}
	account, err := s.requireAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	digits, err := s.recalc.DigitsFor(ctx, *account)
	if err != nil {
		return nil, err
	}
	amount := accounting.Round(input.Amount, digits)
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidation)
	}

	var result *domain.OperationResult
	err = s.mutate(ctx, []string{account.AccountID}, func(tx portsrepo.LedgerTx) error {
		seq, err := tx.NextSequenceNo(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		op := domain.Operation{
			OperationID: uuid.NewString(),
			AccountID:   account.AccountID,
			CategoryID:  normalizeCategory(input.CategoryID),
			Amount:      amount,
			Created:     input.Created.UTC(),
			SequenceNo:  seq,
			AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}

		states, err := s.recalc.Apply(ctx, tx, nil, []domain.Operation{op})
		if err != nil {
			return err
		}
		st := states[account.AccountID]
		_, stored, ok := st.position(op.OperationID)
		if !ok {
			return fmt.Errorf("%w: operation %s missing after insert", apperrors.ErrInternal, op.OperationID)
		}
		result = &domain.OperationResult{Operation: stored, Balance: st.Current}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add operation", slog.String("account_id", input.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Operation added",
		slog.String("operation_id", result.Operation.OperationID),
		slog.String("account_id", account.AccountID),
		slog.String("balance", result.Balance.String()))
	return result, nil
}

func (s *operationService) UpdateOperation(ctx context.Context, operationID string, patch domain.OperationPatch) (*domain.OperationResult, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
	}
	if patch.Created != nil && patch.Created.IsZero() {
		return nil, fmt.Errorf("%w: created must not be empty", apperrors.ErrValidation)
	}

	existing, err := s.store.FindOperationByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if existing.IsTransfer() {
		return nil, fmt.Errorf("%w: operation %s is a transfer leg, update it as a transfer", apperrors.ErrValidation, operationID)
	}

	targetID := existing.AccountID
	if patch.AccountID != nil {
		targetID = *patch.AccountID
	}
	target, err := s.requireAccount(ctx, targetID)
	if err != nil {
		return nil, err
	}
	digits, err := s.recalc.DigitsFor(ctx, *target)
	if err != nil {
		return nil, err
	}
	if patch.Amount != nil && accounting.Round(*patch.Amount, digits).IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidation)
	}

	var result *domain.OperationResult
	err = s.mutate(ctx, []string{existing.AccountID, targetID}, func(tx portsrepo.LedgerTx) error {
		current, err := reloadUnchanged(ctx, tx, *existing)
		if err != nil {
			return err
		}

		updated := *current
		updated.AccountID = targetID
		if patch.Amount != nil {
			updated.Amount = *patch.Amount
		}
		updated.Amount = accounting.Round(updated.Amount, digits)
		if updated.Amount.IsZero() {
			return fmt.Errorf("%w: amount rounds to zero in the target currency", apperrors.ErrValidation)
		}
		if patch.Created != nil {
			updated.Created = patch.Created.UTC()
		}
		if patch.CategoryID != nil {
			updated.CategoryID = normalizeCategory(patch.CategoryID)
		}
		updated.LastUpdatedAt = time.Now().UTC()

		states, err := s.recalc.Apply(ctx, tx, []domain.Operation{*current}, []domain.Operation{updated})
		if err != nil {
			return err
		}
		_, stored, ok := states[targetID].position(operationID)
		if !ok {
			return fmt.Errorf("%w: operation %s missing after update", apperrors.ErrInternal, operationID)
		}
		result = &domain.OperationResult{Operation: stored, Balance: stored.Balance}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update operation", slog.String("operation_id", operationID))
		return nil, err
	}

	s.LogInfo(ctx, "Operation updated",
		slog.String("operation_id", operationID),
		slog.String("account_id", targetID))
	return result, nil
}

func (s *operationService) DeleteOperation(ctx context.Context, operationID string) (*domain.OperationResult, error) {
	existing, err := s.store.FindOperationByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if existing.IsTransfer() {
		// A transfer leg never exists alone.
		res, err := s.deleteTransfer(ctx, *existing)
		if err != nil {
			return nil, err
		}
		if res.From.OperationID == operationID {
			return &domain.OperationResult{Operation: res.From, Balance: res.Balance}, nil
		}
		return &domain.OperationResult{Operation: res.To, Balance: res.TransferBalance}, nil
	}

	var result *domain.OperationResult
	err = s.mutate(ctx, []string{existing.AccountID}, func(tx portsrepo.LedgerTx) error {
		current, err := reloadUnchanged(ctx, tx, *existing)
		if err != nil {
			return err
		}
		states, err := s.recalc.Apply(ctx, tx, []domain.Operation{*current}, nil)
		if err != nil {
			return err
		}
		result = &domain.OperationResult{Operation: *current, Balance: states[current.AccountID].Current}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete operation", slog.String("operation_id", operationID))
		return nil, err
	}

	s.LogInfo(ctx, "Operation deleted",
		slog.String("operation_id", operationID),
		slog.String("account_id", existing.AccountID))
	return result, nil
}

func (s *operationService) ListOperations(ctx context.Context, filter domain.OperationFilter) (*domain.OperationPage, error) {
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrValidation)
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	page := &domain.OperationPage{}
	err := s.store.ReadSnapshot(ctx, func(r portsrepo.LedgerReader) error {
		if filter.AccountID != nil {
			if _, err := r.FindAccountByID(ctx, *filter.AccountID); err != nil {
				return err
			}
		}

		query := filter
		if query.Limit > 0 {
			query.Limit++ // one extra row tells whether another page follows
		}
		ops, err := r.ListOperations(ctx, query)
		if err != nil {
			return err
		}
		if filter.Limit > 0 && len(ops) > filter.Limit {
			ops = ops[:filter.Limit]
			last := ops[len(ops)-1]
			page.Next = &domain.OperationCursor{Created: last.Created, SequenceNo: last.SequenceNo}
		}
		page.Operations = ops

		page.Total, err = r.CountOperations(ctx, filter)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list operations")
		return nil, err
	}
	return page, nil
}
