package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const recordColumns = `id, wallet_id, kind, amount, details, created_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a record within a database transaction and fills in its ID.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.TransactionRecord) error {
	query := `INSERT INTO transactions (wallet_id, kind, amount, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		t.WalletID, t.Kind, t.Amount, t.Details, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// LatestCreatedAt returns the newest record timestamp for a wallet, or nil when it has none.
func (r *TransactionRepo) LatestCreatedAt(ctx context.Context, tx pgx.Tx, walletID int64) (*time.Time, error) {
	query := `SELECT MAX(created_at) FROM transactions WHERE wallet_id = $1`

	var latest *time.Time
	if err := tx.QueryRow(ctx, query, walletID).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest transaction time: %w", err)
	}
	return latest, nil
}

// List fetches records with filtering and pagination, newest first.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.TransactionRecord, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", argIdx))
	args = append(args, params.WalletID)
	argIdx++

	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *params.Kind)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, recordColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Recent returns the latest limit records of a wallet, newest first.
func (r *TransactionRepo) Recent(ctx context.Context, walletID int64, limit int) ([]domain.TransactionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM transactions
		WHERE wallet_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return collectRecords(rows)
}

// GetStats retrieves aggregated record statistics for a wallet.
func (r *TransactionRepo) GetStats(ctx context.Context, walletID int64, periodStart *int64) (*ports.TransactionStats, error) {
	var args []any
	argIdx := 1

	condition := fmt.Sprintf("wallet_id = $%d", argIdx)
	args = append(args, walletID)
	argIdx++

	if periodStart != nil {
		condition += fmt.Sprintf(" AND created_at >= to_timestamp($%d)", argIdx)
		args = append(args, *periodStart)
	}

	// Debit amounts are stored negative; totals are reported as magnitudes.
	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE kind = 'DEPOSIT') AS deposits,
		COUNT(*) FILTER (WHERE kind = 'WITHDRAWAL') AS withdrawals,
		COUNT(*) FILTER (WHERE kind = 'TRANSFER_OUT') AS transfers_out,
		COUNT(*) FILTER (WHERE kind = 'TRANSFER_IN') AS transfers_in,
		COALESCE(SUM(amount) FILTER (WHERE kind = 'DEPOSIT'), 0) AS deposited,
		COALESCE(-SUM(amount) FILTER (WHERE kind = 'WITHDRAWAL'), 0) AS withdrawn,
		COALESCE(-SUM(amount) FILTER (WHERE kind = 'TRANSFER_OUT'), 0) AS transferred_out,
		COALESCE(SUM(amount) FILTER (WHERE kind = 'TRANSFER_IN'), 0) AS transferred_in
		FROM transactions WHERE %s`, condition)

	stats := &ports.TransactionStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.Deposits, &stats.Withdrawals,
		&stats.TransfersOut, &stats.TransfersIn,
		&stats.TotalDeposited, &stats.TotalWithdrawn,
		&stats.TotalTransferredOut, &stats.TotalTransferredIn,
	)
	if err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}
	return stats, nil
}

func collectRecords(rows pgx.Rows) ([]domain.TransactionRecord, error) {
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		t := domain.TransactionRecord{}
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Kind, &t.Amount, &t.Details, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return records, nil
}
