package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxNameLength bounds the first and last name stored on a wallet.
const MaxNameLength = 20

// Wallet is a user's savings wallet. Each user owns at most one.
type Wallet struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FullName returns "First Last", the name beneficiaries are looked up by.
func (w *Wallet) FullName() string {
	return w.FirstName + " " + w.LastName
}

// CanDebit returns true if the balance covers amount.
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}
