package handler

import (
	"demo-credit/internal/adapter/http/dto"
	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler lists the caller's transaction records.
type TransactionHandler struct {
	reportingSvc ports.ReportingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(reportingSvc ports.ReportingService) *TransactionHandler {
	return &TransactionHandler{reportingSvc: reportingSvc}
}

// List handles GET /api/v1/transactions. Records come back newest first.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	params, err := dto.ListParamsFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewTransactionList(records, total, params))
}
