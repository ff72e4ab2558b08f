package service

import (
	"context"
	"time"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	txRepo     ports.TransactionRepository
	walletRepo ports.WalletRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
) ports.ReportingService {
	return &reportingService{
		txRepo:     txRepo,
		walletRepo: walletRepo,
	}
}

// GetStats returns aggregated record stats for the user's wallet.
func (s *reportingService) GetStats(ctx context.Context, userID int64, period string) (*ports.TransactionStats, error) {
	var periodStart *int64

	switch period {
	case "day":
		t := time.Now().AddDate(0, 0, -1).Unix()
		periodStart = &t
	case "week":
		t := time.Now().AddDate(0, 0, -7).Unix()
		periodStart = &t
	case "month":
		t := time.Now().AddDate(0, -1, 0).Unix()
		periodStart = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	wallet, err := s.ownWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.txRepo.GetStats(ctx, wallet.ID, periodStart)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return stats, nil
}

// ListTransactions returns a page of the user's records, newest first.
// params.WalletID is overwritten with the caller's wallet.
func (s *reportingService) ListTransactions(ctx context.Context, userID int64, params ports.TransactionListParams) ([]domain.TransactionRecord, int64, error) {
	wallet, err := s.ownWallet(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	params.WalletID = wallet.ID

	records, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return records, total, nil
}

func (s *reportingService) ownWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrNoWallet()
	}
	return wallet, nil
}
