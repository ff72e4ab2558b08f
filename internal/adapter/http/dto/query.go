package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParamsFromQuery reads page, page_size, kind, from and to from the query string.
// Out-of-range paging falls back to defaults. A malformed kind or timestamp is rejected.
func ListParamsFromQuery(c *gin.Context) (ports.TransactionListParams, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	params := ports.TransactionListParams{Page: page, PageSize: pageSize}

	if k := c.Query("kind"); k != "" {
		kind := domain.RecordKind(k)
		if !kind.Valid() {
			return params, apperror.Validation("kind must be one of DEPOSIT, WITHDRAWAL, TRANSFER_OUT, TRANSFER_IN")
		}
		params.Kind = &kind
	}
	if f := c.Query("from"); f != "" {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return params, apperror.Validation("from must be a unix timestamp")
		}
		params.From = &v
	}
	if t := c.Query("to"); t != "" {
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return params, apperror.Validation("to must be a unix timestamp")
		}
		params.To = &v
	}
	return params, nil
}

// NewTransactionList builds the paginated list body.
func NewTransactionList(records []domain.TransactionRecord, total int64, params ports.TransactionListParams) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(records))
	for i := range records {
		items = append(items, NewTransactionResponse(&records[i]))
	}

	return TransactionListResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PageSize))),
	}
}

// ParseAmount converts a bound amount to a decimal. Sign, precision and the
// ceiling are checked by the wallet service.
func ParseAmount(raw json.Number) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw.String()))
	if err != nil {
		appErr := apperror.ErrInvalidAmount()
		appErr.Message = "Invalid amount: " + domain.ErrAmountMalformed.Error()
		return decimal.Zero, appErr
	}
	return amount, nil
}
