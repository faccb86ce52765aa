package mapping

import (
	"database/sql"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/SscSPs/balance_ledger/internal/models"
)

func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ToModelOperation converts a domain Operation to a model Operation
func ToModelOperation(d domain.Operation) models.Operation {
	return models.Operation{
		OperationID:    d.OperationID,
		AccountID:      d.AccountID,
		CategoryID:     toNullString(d.CategoryID),
		Amount:         d.Amount,
		Created:        d.Created,
		SequenceNo:     d.SequenceNo,
		Balance:        d.Balance,
		TransferPeerID: toNullString(d.TransferPeerID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOperation converts a model Operation to a domain Operation
func ToDomainOperation(m models.Operation) domain.Operation {
	return domain.Operation{
		OperationID:    m.OperationID,
		AccountID:      m.AccountID,
		CategoryID:     fromNullString(m.CategoryID),
		Amount:         m.Amount,
		Created:        m.Created.UTC(),
		SequenceNo:     m.SequenceNo,
		Balance:        m.Balance,
		TransferPeerID: fromNullString(m.TransferPeerID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOperationSlice converts a slice of model Operations to a slice of domain Operations
func ToDomainOperationSlice(ms []models.Operation) []domain.Operation {
	ds := make([]domain.Operation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOperation(m)
	}
	return ds
}
