package handler

import (
	"context"
	"strconv"

	"demo-credit/internal/adapter/http/dto"
	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet endpoints for the authenticated user.
type WalletHandler struct {
	walletSvc    ports.WalletService
	reportingSvc ports.ReportingService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, reportingSvc ports.ReportingService) *WalletHandler {
	return &WalletHandler{
		walletSvc:    walletSvc,
		reportingSvc: reportingSvc,
	}
}

// CreateCustom handles POST /api/v1/wallets.
func (h *WalletHandler) CreateCustom(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.CreateCustomWallet(c.Request.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(wallet.ID, 10))
	response.Created(c, dto.NewWalletResponse(wallet))
}

// CreateDefault handles POST /api/v1/wallets/default.
func (h *WalletHandler) CreateDefault(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.walletSvc.CreateDefaultWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(wallet.ID, 10))
	response.Created(c, dto.NewWalletResponse(wallet))
}

// GetMine handles GET /api/v1/wallets/me.
func (h *WalletHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet))
}

// Deposit handles POST /api/v1/wallets/me/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	h.moveOwn(c, h.walletSvc.Deposit)
}

// Withdraw handles POST /api/v1/wallets/me/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.moveOwn(c, h.walletSvc.Withdraw)
}

type moneyFunc func(ctx context.Context, userID int64, amount decimal.Decimal) (*ports.MoneyResult, error)

func (h *WalletHandler) moveOwn(c *gin.Context, fn moneyFunc) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := fn(c.Request.Context(), userID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(result.Wallet.ID, 10))
	response.OK(c, dto.MoneyResponse{
		Wallet:      dto.NewWalletResponse(result.Wallet),
		Transaction: dto.NewTransactionResponse(result.Record),
	})
}

// Transfer handles POST /api/v1/wallets/me/transfer.
func (h *WalletHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.walletSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		UserID:           userID,
		BeneficiaryEmail: req.Email,
		BeneficiaryName:  req.Name,
		BankCode:         req.Bank,
		Amount:           amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(result.Wallet.ID, 10))
	response.OK(c, dto.TransferResponse{
		Wallet:      dto.NewWalletResponse(result.Wallet),
		Transaction: dto.NewTransactionResponse(result.Record),
		Beneficiary: result.Beneficiary,
	})
}

// Stats handles GET /api/v1/wallets/me/stats.
func (h *WalletHandler) Stats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetStats(c.Request.Context(), userID, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStatsResponse(stats))
}
