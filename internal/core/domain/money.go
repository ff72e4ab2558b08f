package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits money is stored with (numeric(12,2)).
const AmountPlaces = 2

var (
	// MaxAmount is the largest value a numeric(12,2) column can hold.
	MaxAmount = decimal.RequireFromString("9999999999.99")
	// MaxBalance caps a wallet balance at the column ceiling.
	MaxBalance = MaxAmount
)

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount must have at most two decimal places")
	ErrAmountTooLarge    = errors.New("amount exceeds the maximum allowed")
	ErrAmountMalformed   = errors.New("amount is not a valid number")
)

// ParseAmount parses a user-supplied money amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrAmountMalformed
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrAmountMalformed
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount checks an already-parsed amount.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrAmountNotPositive
	}
	if !d.Equal(d.Truncate(AmountPlaces)) {
		return ErrAmountPrecision
	}
	if d.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// FormatAmount renders an amount the way record descriptions show it, e.g. "100.00".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// DepositDetails describes a deposit.
func DepositDetails(amount decimal.Decimal) string {
	return fmt.Sprintf("You funded your account with %s naira.", FormatAmount(amount))
}

// WithdrawalDetails describes a withdrawal.
func WithdrawalDetails(amount decimal.Decimal) string {
	return fmt.Sprintf("You withdrew %s naira from your account.", FormatAmount(amount))
}

// TransferOutDetails describes a debit to a beneficiary. bank is optional.
func TransferOutDetails(amount decimal.Decimal, beneficiary string, bank string) string {
	msg := fmt.Sprintf("You transferred %s naira to %s.", FormatAmount(amount), beneficiary)
	if bank != "" {
		msg = fmt.Sprintf("You transferred %s naira to %s (%s).", FormatAmount(amount), beneficiary, bank)
	}
	return msg
}

// TransferInDetails describes a credit received from a sender.
func TransferInDetails(amount decimal.Decimal, sender string) string {
	return fmt.Sprintf("You were credited with %s naira from %s.", FormatAmount(amount), sender)
}
