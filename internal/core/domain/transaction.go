package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxDetailsLength bounds the free-text description of a record.
const MaxDetailsLength = 255

// RecordKind classifies the balance mutation a record describes.
type RecordKind string

const (
	RecordKindDeposit     RecordKind = "DEPOSIT"
	RecordKindWithdrawal  RecordKind = "WITHDRAWAL"
	RecordKindTransferOut RecordKind = "TRANSFER_OUT"
	RecordKindTransferIn  RecordKind = "TRANSFER_IN"
)

// IsDebit returns true for kinds that reduce the wallet balance.
func (k RecordKind) IsDebit() bool {
	return k == RecordKindWithdrawal || k == RecordKindTransferOut
}

// Valid reports whether k is a known kind.
func (k RecordKind) Valid() bool {
	switch k {
	case RecordKindDeposit, RecordKindWithdrawal, RecordKindTransferOut, RecordKindTransferIn:
		return true
	}
	return false
}

// TransactionRecord is an immutable history entry appended on every balance mutation.
type TransactionRecord struct {
	ID        int64           `json:"id"`
	WalletID  int64           `json:"wallet_id"`
	Kind      RecordKind      `json:"kind"`
	Amount    decimal.Decimal `json:"amount"` // Signed: negative for debits
	Details   string          `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}
