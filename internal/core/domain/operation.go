package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a single signed amount posted to one account at one instant.
// Balance is derived: the cumulative balance of the account up to and including
// this operation in canonical (Created, SequenceNo) order.
type Operation struct {
	OperationID    string          `json:"operationID"` // Primary Key (e.g., UUID)
	AccountID      string          `json:"accountID"`   // FK -> accounts.account_id (NON-NULL)
	CategoryID     *string         `json:"categoryID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`     // Signed; rounded to the account currency
	Created        time.Time       `json:"created"`    // Business date of the operation
	SequenceNo     int64           `json:"sequenceNo"` // Tie-break for equal Created
	Balance        decimal.Decimal `json:"balance"`
	TransferPeerID *string         `json:"transferPeerID,omitempty"` // Paired leg of a transfer
	AuditFields
}

// IsTransfer reports whether the operation is one leg of a transfer.
func (o Operation) IsTransfer() bool {
	return o.TransferPeerID != nil && *o.TransferPeerID != ""
}

// CompareOperations orders operations by Created, then SequenceNo.
func CompareOperations(a, b Operation) int {
	if c := a.Created.Compare(b.Created); c != 0 {
		return c
	}
	return cmp.Compare(a.SequenceNo, b.SequenceNo)
}

// SortOperations sorts operations into canonical ascending order in place.
func SortOperations(ops []Operation) {
	slices.SortFunc(ops, CompareOperations)
}

// PositionOf returns the index of the operation with the given id, or -1.
func PositionOf(ops []Operation, operationID string) int {
	return slices.IndexFunc(ops, func(o Operation) bool { return o.OperationID == operationID })
}

// LastAtOrBefore returns the index of the latest operation with Created <= at
// in an ordered chain, or -1 if every operation is later.
func LastAtOrBefore(ops []Operation, at time.Time) int {
	i, _ := slices.BinarySearchFunc(ops, at, func(o Operation, t time.Time) int {
		if o.Created.After(t) {
			return 1
		}
		return -1
	})
	return i - 1
}

// OperationPatch holds the optional changes of an operation update.
type OperationPatch struct {
	Amount     *decimal.Decimal
	Created    *time.Time
	AccountID  *string
	CategoryID *string
}

// IsEmpty reports whether the patch changes nothing.
func (p OperationPatch) IsEmpty() bool {
	return p.Amount == nil && p.Created == nil && p.AccountID == nil && p.CategoryID == nil
}

// OperationFilter selects operations for listing. Results are newest-first.
type OperationFilter struct {
	AccountID  *string
	CategoryID *string
	Limit      int
	// Before, when set, restricts results to operations strictly older than the cursor.
	Before *OperationCursor
}

// OperationCursor is a position in canonical order.
type OperationCursor struct {
	Created    time.Time
	SequenceNo int64
}

// Matches reports whether op passes the account/category part of the filter.
func (f OperationFilter) Matches(op Operation) bool {
	if f.AccountID != nil && op.AccountID != *f.AccountID {
		return false
	}
	if f.CategoryID != nil && (op.CategoryID == nil || *op.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Before != nil && CompareOperations(op, Operation{Created: f.Before.Created, SequenceNo: f.Before.SequenceNo}) >= 0 {
		return false
	}
	return true
}

// OperationInput describes a new single operation.
type OperationInput struct {
	AccountID  string
	CategoryID *string
	Amount     decimal.Decimal
	Created    time.Time
}

// OperationPage is one page of a newest-first operation listing.
// Next is set when more operations follow the last one on the page.
type OperationPage struct {
	Operations []Operation
	Total      int
	Next       *OperationCursor
}
