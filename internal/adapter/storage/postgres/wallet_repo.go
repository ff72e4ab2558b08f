package postgres

import (
	"context"
	"errors"
	"fmt"

	"demo-credit/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, user_id, first_name, last_name, balance, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet and fills in the generated ID and timestamps.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, first_name, last_name, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		w.UserID, w.FirstName, w.LastName, w.Balance,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its ID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, id), "get wallet by id")
}

// GetByUserID fetches the wallet owned by a user (non-locking read).
func (r *WalletRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, userID), "get wallet by user id")
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, id), "get wallet for update by id")
}

// GetByUserIDForUpdate fetches a user's wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, userID), "get wallet for update by user")
}

// LockPair locks two wallets in ascending ID order so concurrent transfers
// between the same wallets cannot deadlock. Wallets are returned in argument order;
// either may be nil if it does not exist.
func (r *WalletRepo) LockPair(ctx context.Context, tx pgx.Tx, firstID, secondID int64) (*domain.Wallet, *domain.Wallet, error) {
	lo, hi := firstID, secondID
	if lo > hi {
		lo, hi = hi, lo
	}

	loWallet, err := r.GetByIDForUpdate(ctx, tx, lo)
	if err != nil {
		return nil, nil, err
	}
	hiWallet, err := r.GetByIDForUpdate(ctx, tx, hi)
	if err != nil {
		return nil, nil, err
	}

	if firstID == lo {
		return loWallet, hiWallet, nil
	}
	return hiWallet, loWallet, nil
}

// FindByName returns wallets whose owner name matches, ignoring case.
func (r *WalletRepo) FindByName(ctx context.Context, firstName, lastName string) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE LOWER(first_name) = LOWER($1) AND LOWER(last_name) = LOWER($2)
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("find wallets by name: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w := domain.Wallet{}
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.FirstName, &w.LastName,
			&w.Balance, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// AdjustBalance adds delta to the wallet balance within a transaction and
// returns the updated row. The caller is responsible for the debit guard.
func (r *WalletRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, walletID int64, delta decimal.Decimal) (*domain.Wallet, error) {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + walletColumns

	w, err := scanWallet(tx.QueryRow(ctx, query, delta, walletID), "adjust wallet balance")
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("wallet not found: %d", walletID)
	}
	return w, nil
}

func scanWallet(row pgx.Row, op string) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.UserID, &w.FirstName, &w.LastName,
		&w.Balance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}
