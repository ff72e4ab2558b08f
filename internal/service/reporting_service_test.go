package service

import (
	"context"
	"errors"
	"testing"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/internal/core/ports/mocks"
	"demo-credit/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupReportingService(t *testing.T) (ports.ReportingService, *mocks.MockTransactionRepository, *mocks.MockWalletRepository) {
	ctrl := gomock.NewController(t)
	mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
	mockWalletRepo := mocks.NewMockWalletRepository(ctrl)
	return NewReportingService(mockTxRepo, mockWalletRepo), mockTxRepo, mockWalletRepo
}

func TestReportingService_GetStats_All(t *testing.T) {
	svc, mockTxRepo, mockWalletRepo := setupReportingService(t)

	expected := &ports.TransactionStats{
		TotalTransactions: 10,
		Deposits:          4,
		Withdrawals:       3,
		TransfersOut:      2,
		TransfersIn:       1,
		TotalDeposited:    decimal.RequireFromString("4000.00"),
	}

	mockWalletRepo.EXPECT().GetByUserID(gomock.Any(), int64(7)).Return(&domain.Wallet{ID: 3, UserID: 7}, nil)
	mockTxRepo.EXPECT().GetStats(gomock.Any(), int64(3), (*int64)(nil)).Return(expected, nil)

	result, err := svc.GetStats(context.Background(), 7, "all")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestReportingService_GetStats_WithPeriod(t *testing.T) {
	svc, mockTxRepo, mockWalletRepo := setupReportingService(t)

	mockWalletRepo.EXPECT().GetByUserID(gomock.Any(), int64(7)).Return(&domain.Wallet{ID: 3, UserID: 7}, nil)
	// For "week" period, periodStart should be non-nil
	mockTxRepo.EXPECT().GetStats(gomock.Any(), int64(3), gomock.Not(gomock.Nil())).
		Return(&ports.TransactionStats{TotalTransactions: 2}, nil)

	result, err := svc.GetStats(context.Background(), 7, "week")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalTransactions)
}

func TestReportingService_GetStats_InvalidPeriod(t *testing.T) {
	svc, _, _ := setupReportingService(t)

	_, err := svc.GetStats(context.Background(), 7, "fortnight")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestReportingService_GetStats_NoWallet(t *testing.T) {
	svc, _, mockWalletRepo := setupReportingService(t)

	mockWalletRepo.EXPECT().GetByUserID(gomock.Any(), int64(7)).Return(nil, nil)

	_, err := svc.GetStats(context.Background(), 7, "")
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WAL_009", appErr.Code)
}

func TestReportingService_ListTransactions_ScopesToOwnWallet(t *testing.T) {
	svc, mockTxRepo, mockWalletRepo := setupReportingService(t)

	records := []domain.TransactionRecord{
		{ID: 2, WalletID: 3, Kind: domain.RecordKindWithdrawal},
		{ID: 1, WalletID: 3, Kind: domain.RecordKindDeposit},
	}

	mockWalletRepo.EXPECT().GetByUserID(gomock.Any(), int64(7)).Return(&domain.Wallet{ID: 3, UserID: 7}, nil)
	mockTxRepo.EXPECT().List(gomock.Any(), ports.TransactionListParams{WalletID: 3, Page: 1, PageSize: 20}).
		Return(records, int64(2), nil)

	// A caller-supplied wallet ID must not leak another user's history.
	got, total, err := svc.ListTransactions(context.Background(), 7, ports.TransactionListParams{WalletID: 99, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, records, got)
}

func TestReportingService_ListTransactions_RepoError(t *testing.T) {
	svc, mockTxRepo, mockWalletRepo := setupReportingService(t)

	mockWalletRepo.EXPECT().GetByUserID(gomock.Any(), int64(7)).Return(&domain.Wallet{ID: 3}, nil)
	mockTxRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	_, _, err := svc.ListTransactions(context.Background(), 7, ports.TransactionListParams{Page: 1, PageSize: 20})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SYS_001", appErr.Code)
}
