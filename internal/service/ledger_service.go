package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerService implements ports.LedgerService.
type ledgerService struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	now        func() time.Time
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(walletRepo ports.WalletRepository, txRepo ports.TransactionRepository) ports.LedgerService {
	return &ledgerService{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ApplyDelta adds delta to the wallet balance. A negative delta is a debit and
// fails with insufficient funds when the balance does not cover it.
// The caller must already hold the row lock on walletID.
func (s *ledgerService) ApplyDelta(ctx context.Context, tx pgx.Tx, walletID int64, delta decimal.Decimal) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	if delta.IsNegative() && !wallet.CanDebit(delta.Neg()) {
		return nil, apperror.ErrInsufficientFunds()
	}
	if wallet.Balance.Add(delta).GreaterThan(domain.MaxBalance) {
		return nil, apperror.ErrBalanceLimitExceeded()
	}

	updated, err := s.walletRepo.AdjustBalance(ctx, tx, walletID, delta)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("adjust balance: %w", err))
	}
	return updated, nil
}

// AppendRecord stores an immutable history entry for walletID. amount is the
// unsigned magnitude; debit kinds are stored negative. CreatedAt never goes
// backwards relative to the wallet's latest record.
func (s *ledgerService) AppendRecord(ctx context.Context, tx pgx.Tx, walletID int64, kind domain.RecordKind, amount decimal.Decimal, details string) (*domain.TransactionRecord, error) {
	if !kind.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown record kind %q", kind))
	}
	details = strings.TrimSpace(details)
	if details == "" {
		return nil, apperror.Validation("record details are required")
	}
	if utf8.RuneCountInString(details) > domain.MaxDetailsLength {
		return nil, apperror.Validation(fmt.Sprintf("record details must be at most %d characters", domain.MaxDetailsLength))
	}

	latest, err := s.txRepo.LatestCreatedAt(ctx, tx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("latest record: %w", err))
	}
	createdAt := s.now()
	if latest != nil && latest.After(createdAt) {
		createdAt = *latest
	}

	signed := amount.Abs()
	if kind.IsDebit() {
		signed = signed.Neg()
	}

	record := &domain.TransactionRecord{
		WalletID:  walletID,
		Kind:      kind,
		Amount:    signed,
		Details:   details,
		CreatedAt: createdAt,
	}
	if err := s.txRepo.Create(ctx, tx, record); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create record: %w", err))
	}
	return record, nil
}
