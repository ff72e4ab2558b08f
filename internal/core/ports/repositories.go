package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"demo-credit/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines persistence operations for users.
// Getters return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id int64) (*domain.Wallet, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Wallet, error)
	// LockPair locks both wallets in ascending id order and returns them in argument order.
	LockPair(ctx context.Context, tx pgx.Tx, firstID, secondID int64) (*domain.Wallet, *domain.Wallet, error)
	// FindByName matches first and last name case-insensitively.
	FindByName(ctx context.Context, firstName, lastName string) ([]domain.Wallet, error)
	// AdjustBalance applies balance = balance + delta and returns the updated row.
	AdjustBalance(ctx context.Context, tx pgx.Tx, walletID int64, delta decimal.Decimal) (*domain.Wallet, error)
}

// TransactionRepository defines persistence operations for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.TransactionRecord) error
	// LatestCreatedAt returns the newest record timestamp of a wallet, or nil if it has none.
	LatestCreatedAt(ctx context.Context, tx pgx.Tx, walletID int64) (*time.Time, error)
	// Reporting queries
	List(ctx context.Context, params TransactionListParams) ([]domain.TransactionRecord, int64, error)
	Recent(ctx context.Context, walletID int64, limit int) ([]domain.TransactionRecord, error)
	GetStats(ctx context.Context, walletID int64, periodStart *int64) (*TransactionStats, error)
}

// TransactionListParams holds filter + pagination for listing records.
type TransactionListParams struct {
	WalletID int64
	Kind     *domain.RecordKind
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// TransactionStats holds aggregated statistics per record kind.
type TransactionStats struct {
	TotalTransactions   int64           `json:"total_transactions"`
	Deposits            int64           `json:"deposits"`
	Withdrawals         int64           `json:"withdrawals"`
	TransfersOut        int64           `json:"transfers_out"`
	TransfersIn         int64           `json:"transfers_in"`
	TotalDeposited      decimal.Decimal `json:"total_deposited"`
	TotalWithdrawn      decimal.Decimal `json:"total_withdrawn"`
	TotalTransferredOut decimal.Decimal `json:"total_transferred_out"`
	TotalTransferredIn  decimal.Decimal `json:"total_transferred_in"`
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
