package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Operation represents a row of the operations table.
type Operation struct {
	OperationID    string          `db:"operation_id"`
	AccountID      string          `db:"account_id"`
	CategoryID     sql.NullString  `db:"category_id"`
	Amount         decimal.Decimal `db:"amount"`
	Created        time.Time       `db:"created"`
	SequenceNo     int64           `db:"sequence_no"`
	Balance        decimal.Decimal `db:"balance"`
	TransferPeerID sql.NullString  `db:"transfer_peer_id"`
	AuditFields
}
