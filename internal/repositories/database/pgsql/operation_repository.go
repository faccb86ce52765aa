package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/balance_ledger/internal/models"
	"github.com/SscSPs/balance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const operationColumns = `operation_id, account_id, category_id, amount, created, sequence_no, balance, transfer_peer_id, created_at, last_updated_at`

type PgxOperationRepository struct {
	db querier
}

// newPgxOperationRepository creates a new repository for operation data.
func newPgxOperationRepository(db querier) *PgxOperationRepository {
	return &PgxOperationRepository{db: db}
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

func scanOperation(row pgx.Row) (models.Operation, error) {
	var m models.Operation
	err := row.Scan(
		&m.OperationID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Created,
		&m.SequenceNo,
		&m.Balance,
		&m.TransferPeerID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func collectOperations(rows pgx.Rows) ([]domain.Operation, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Operation])
	if err != nil {
		return nil, storeError("failed to collect operation rows", err)
	}
	return mapping.ToDomainOperationSlice(ms), nil
}

// FindOperationByID retrieves an operation by its ID.
func (r *PgxOperationRepository) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE operation_id = $1;`
	m, err := scanOperation(r.db.QueryRow(ctx, query, operationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
		}
		return nil, storeError(fmt.Sprintf("failed to find operation %s", operationID), err)
	}
	op := mapping.ToDomainOperation(m)
	return &op, nil
}

// FindOperationsOrdered retrieves the chain of an account in canonical order.
func (r *PgxOperationRepository) FindOperationsOrdered(ctx context.Context, accountID string) ([]domain.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE account_id = $1
		ORDER BY created ASC, sequence_no ASC;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("failed to query operations of account %s", accountID), err)
	}
	ops, err := collectOperations(rows)
	if err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []domain.Operation{}
	}
	return ops, nil
}

// filterClause builds the WHERE clause of a listing. The cursor is only
// applied when withCursor is set.
func filterClause(filter domain.OperationFilter, withCursor bool) (string, []any) {
	var conds []string
	var args []any
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conds = append(conds, fmt.Sprintf("account_id = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if withCursor && filter.Before != nil {
		args = append(args, filter.Before.Created, filter.Before.SequenceNo)
		conds = append(conds, fmt.Sprintf("(created, sequence_no) < ($%d, $%d)", len(args)-1, len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListOperations retrieves operations newest first.
func (r *PgxOperationRepository) ListOperations(ctx context.Context, filter domain.OperationFilter) ([]domain.Operation, error) {
	where, args := filterClause(filter, true)
	query := `SELECT ` + operationColumns + ` FROM operations` + where + ` ORDER BY created DESC, sequence_no DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list operations", err)
	}
	ops, err := collectOperations(rows)
	if err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []domain.Operation{}
	}
	return ops, nil
}

// CountOperations counts operations matching the account/category filter.
func (r *PgxOperationRepository) CountOperations(ctx context.Context, filter domain.OperationFilter) (int, error) {
	where, args := filterClause(filter, false)
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM operations`+where, args...).Scan(&count); err != nil {
		return 0, storeError("failed to count operations", err)
	}
	return count, nil
}

// NextSequenceNo draws from the operation sequence. Values are never reused,
// even when the surrounding transaction rolls back.
func (r *PgxOperationRepository) NextSequenceNo(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('operation_sequence_no_seq');`).Scan(&n); err != nil {
		return 0, storeError("failed to draw sequence number", err)
	}
	return n, nil
}

// SaveOperation inserts an operation or replaces the stored one with the same id.
func (r *PgxOperationRepository) SaveOperation(ctx context.Context, operation domain.Operation) error {
	m := mapping.ToModelOperation(operation)
	query := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (operation_id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			category_id = EXCLUDED.category_id,
			amount = EXCLUDED.amount,
			created = EXCLUDED.created,
			balance = EXCLUDED.balance,
			transfer_peer_id = EXCLUDED.transfer_peer_id,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.db.Exec(ctx, query,
		m.OperationID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Created,
		m.SequenceNo,
		m.Balance,
		m.TransferPeerID,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return storeError(fmt.Sprintf("failed to save operation %s", m.OperationID), err)
	}
	return nil
}

// UpdateOperationBalances writes derived balances in one batch round trip.
func (r *PgxOperationRepository) UpdateOperationBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	if len(balances) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for id, balance := range balances {
		batch.Queue(`UPDATE operations SET balance = $2 WHERE operation_id = $1;`, id, balance)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range balances {
		tag, err := br.Exec()
		if err != nil {
			return storeError("failed to update operation balances", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: operation vanished during balance update", apperrors.ErrNotFound)
		}
	}
	return nil
}

// DeleteOperation removes an operation.
func (r *PgxOperationRepository) DeleteOperation(ctx context.Context, operationID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM operations WHERE operation_id = $1;`, operationID)
	if err != nil {
		return storeError(fmt.Sprintf("failed to delete operation %s", operationID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
	}
	return nil
}
