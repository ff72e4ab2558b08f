package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// defaultRecentLimit is how many records the home page shows.
const defaultRecentLimit = 5

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	userRepo   ports.UserRepository
	txRepo     ports.TransactionRepository
	ledger     ports.LedgerService
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	userRepo ports.UserRepository,
	txRepo ports.TransactionRepository,
	ledger ports.LedgerService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		txRepo:     txRepo,
		ledger:     ledger,
		transactor: transactor,
		log:        log,
	}
}

// CreateDefaultWallet creates a wallet named after the user's profile.
func (s *WalletServiceImpl) CreateDefaultWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	if !user.HasFullName() {
		return nil, apperror.Validation("your profile has no first and last name, create a custom wallet instead")
	}
	return s.createWallet(ctx, userID, user.FirstName, user.LastName)
}

// CreateCustomWallet creates a wallet under the given holder name.
func (s *WalletServiceImpl) CreateCustomWallet(ctx context.Context, userID int64, firstName, lastName string) (*domain.Wallet, error) {
	return s.createWallet(ctx, userID, firstName, lastName)
}

func (s *WalletServiceImpl) createWallet(ctx context.Context, userID int64, firstName, lastName string) (*domain.Wallet, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if err := validateWalletName("first name", firstName); err != nil {
		return nil, err
	}
	if err := validateWalletName("last name", lastName); err != nil {
		return nil, err
	}

	existing, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrWalletExists()
	}

	wallet := &domain.Wallet{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Balance:   decimal.Zero,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrDuplicateWallet) {
			return nil, apperror.ErrWalletExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("wallet_id", wallet.ID).
		Msg("wallet created")

	return wallet, nil
}

func validateWalletName(field, v string) error {
	if v == "" {
		return apperror.Validation(field + " is required")
	}
	if utf8.RuneCountInString(v) > domain.MaxNameLength {
		return apperror.Validation(fmt.Sprintf("%s must be at most %d characters", field, domain.MaxNameLength))
	}
	return nil
}

// GetWallet returns the user's wallet.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNoWallet()
	}
	return wallet, nil
}

// Deposit credits the user's wallet.
func (s *WalletServiceImpl) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*ports.MoneyResult, error) {
	return s.mutateOwn(ctx, userID, amount, domain.RecordKindDeposit, domain.DepositDetails(amount))
}

// Withdraw debits the user's wallet.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*ports.MoneyResult, error) {
	return s.mutateOwn(ctx, userID, amount, domain.RecordKindWithdrawal, domain.WithdrawalDetails(amount))
}

// mutateOwn locks the user's wallet, applies the signed amount and appends one record.
func (s *WalletServiceImpl) mutateOwn(ctx context.Context, userID int64, amount decimal.Decimal, kind domain.RecordKind, details string) (*ports.MoneyResult, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	delta := amount
	if kind.IsDebit() {
		delta = amount.Neg()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNoWallet()
	}

	updated, err := s.ledger.ApplyDelta(ctx, dbTx, wallet.ID, delta)
	if err != nil {
		return nil, err
	}
	record, err := s.ledger.AppendRecord(ctx, dbTx, wallet.ID, kind, amount, details)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("wallet_id", wallet.ID).
		Str("kind", string(kind)).
		Str("amount", domain.FormatAmount(amount)).
		Msg("wallet balance updated")

	return &ports.MoneyResult{Wallet: updated, Record: record}, nil
}

// Transfer moves funds from the user's wallet to a beneficiary found by email or name.
// Debit, credit and both records commit together or not at all.
func (s *WalletServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if err := checkAmount(req.Amount); err != nil {
		return nil, err
	}

	var bankName string
	if req.BankCode != "" {
		bank, ok := domain.LookupBank(req.BankCode)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("unknown bank %q", req.BankCode))
		}
		bankName = bank.Name
	}

	dest, err := s.resolveBeneficiary(ctx, req)
	if err != nil {
		return nil, err
	}

	source, err := s.GetWallet(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if dest.ID == source.ID {
		return nil, apperror.ErrSelfTransfer()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	source, dest, err = s.walletRepo.LockPair(ctx, dbTx, source.ID, dest.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallets: %w", err))
	}
	if source == nil {
		return nil, apperror.ErrNoWallet()
	}
	if dest == nil {
		return nil, apperror.ErrBeneficiaryHasNoWallet()
	}

	updated, record, err := s.moveFunds(ctx, dbTx, source, dest, req.Amount, bankName)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("user_id", req.UserID).
		Int64("wallet_id", source.ID).
		Int64("beneficiary_wallet_id", dest.ID).
		Str("amount", domain.FormatAmount(req.Amount)).
		Msg("transfer completed")

	return &ports.TransferResult{
		Wallet:      updated,
		Record:      record,
		Beneficiary: dest.FullName(),
	}, nil
}

func (s *WalletServiceImpl) moveFunds(ctx context.Context, dbTx pgx.Tx, source, dest *domain.Wallet, amount decimal.Decimal, bankName string) (*domain.Wallet, *domain.TransactionRecord, error) {
	updated, err := s.ledger.ApplyDelta(ctx, dbTx, source.ID, amount.Neg())
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.ledger.ApplyDelta(ctx, dbTx, dest.ID, amount); err != nil {
		return nil, nil, err
	}

	record, err := s.ledger.AppendRecord(ctx, dbTx, source.ID, domain.RecordKindTransferOut, amount,
		domain.TransferOutDetails(amount, dest.FullName(), bankName))
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.ledger.AppendRecord(ctx, dbTx, dest.ID, domain.RecordKindTransferIn, amount,
		domain.TransferInDetails(amount, source.FullName())); err != nil {
		return nil, nil, err
	}
	return updated, record, nil
}

// resolveBeneficiary finds the destination wallet by email, or by "First Last".
func (s *WalletServiceImpl) resolveBeneficiary(ctx context.Context, req ports.TransferRequest) (*domain.Wallet, error) {
	email := strings.TrimSpace(req.BeneficiaryEmail)
	name := strings.TrimSpace(req.BeneficiaryName)

	switch {
	case email != "" && name != "":
		return nil, apperror.Validation("identify the beneficiary by email or by name, not both")
	case email != "":
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("find beneficiary: %w", err))
		}
		if user == nil {
			return nil, apperror.ErrBeneficiaryNotFound(email)
		}
		wallet, err := s.walletRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("find beneficiary wallet: %w", err))
		}
		if wallet == nil {
			return nil, apperror.ErrBeneficiaryHasNoWallet()
		}
		return wallet, nil
	case name != "":
		parts := strings.Fields(name)
		if len(parts) != 2 {
			return nil, apperror.Validation("beneficiary name must be a first and last name")
		}
		matches, err := s.walletRepo.FindByName(ctx, parts[0], parts[1])
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("find beneficiary: %w", err))
		}
		switch len(matches) {
		case 0:
			return nil, apperror.ErrBeneficiaryNotFound(name)
		case 1:
			return &matches[0], nil
		default:
			return nil, apperror.ErrAmbiguousBeneficiary(name)
		}
	default:
		return nil, apperror.Validation("beneficiary email or name is required")
	}
}

// RecentTransactions returns the newest records of the user's wallet.
func (s *WalletServiceImpl) RecentTransactions(ctx context.Context, userID int64, limit int) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.txRepo.Recent(ctx, wallet.ID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("recent records: %w", err))
	}
	return records, nil
}

func checkAmount(amount decimal.Decimal) error {
	if err := domain.ValidateAmount(amount); err != nil {
		appErr := apperror.ErrInvalidAmount()
		appErr.Message = "Invalid amount: " + err.Error()
		return appErr
	}
	return nil
}

var _ ports.WalletService = (*WalletServiceImpl)(nil)
