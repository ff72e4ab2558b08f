package dto

import (
	"encoding/json"
	"time"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username  string `json:"username" form:"username" binding:"required,min=3,max=150,safe_id"`
	Email     string `json:"email" form:"email" binding:"required,email,max=254"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=128" sanitize:"-"`
	FirstName string `json:"first_name" form:"first_name" binding:"required,person_name"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,person_name"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required" sanitize:"-"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// UpdateProfileRequest is the request body for PATCH /users/me. Omitted fields are unchanged.
type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=150,safe_id"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,person_name"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,person_name"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at"`
}

// CreateWalletRequest is the request body for creating a custom wallet.
type CreateWalletRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,person_name"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,person_name"`
}

// AmountRequest is the request body for deposit and withdraw.
// Amount accepts a JSON number or a numeric string, e.g. 100.5 or "100.50".
type AmountRequest struct {
	Amount json.Number `json:"amount" form:"amount" binding:"required,decimal_amount"`
}

// TransferRequest is the request body for transfers. One of Email or Name is required.
type TransferRequest struct {
	Email  string      `json:"email,omitempty" form:"email" binding:"required_without=Name,omitempty,email,max=254"`
	Name   string      `json:"name,omitempty" form:"name" binding:"required_without=Email,omitempty,max=41"`
	Bank   string      `json:"bank,omitempty" form:"bank" binding:"omitempty,bank_code"`
	Amount json.Number `json:"amount" form:"amount" binding:"required,decimal_amount"`
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

// TransactionResponse is the public view of a transaction record.
type TransactionResponse struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

// MoneyResponse is the response body for deposit and withdraw.
type MoneyResponse struct {
	Wallet      WalletResponse      `json:"wallet"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransferResponse is the response body for a transfer.
type TransferResponse struct {
	Wallet      WalletResponse      `json:"wallet"`
	Transaction TransactionResponse `json:"transaction"`
	Beneficiary string              `json:"beneficiary"`
}

// StatsResponse is the response for wallet statistics.
type StatsResponse struct {
	TotalTransactions   int64  `json:"total_transactions"`
	Deposits            int64  `json:"deposits"`
	Withdrawals         int64  `json:"withdrawals"`
	TransfersOut        int64  `json:"transfers_out"`
	TransfersIn         int64  `json:"transfers_in"`
	TotalDeposited      string `json:"total_deposited"`
	TotalWithdrawn      string `json:"total_withdrawn"`
	TotalTransferredOut string `json:"total_transferred_out"`
	TotalTransferredIn  string `json:"total_transferred_in"`
}

// TransactionListResponse wraps paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NewWalletResponse converts a domain wallet.
func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Balance:   domain.FormatAmount(w.Balance),
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}

// NewTransactionResponse converts a domain record.
func NewTransactionResponse(r *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Amount:    domain.FormatAmount(r.Amount),
		Details:   r.Details,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// NewStatsResponse converts aggregated stats.
func NewStatsResponse(s *ports.TransactionStats) StatsResponse {
	return StatsResponse{
		TotalTransactions:   s.TotalTransactions,
		Deposits:            s.Deposits,
		Withdrawals:         s.Withdrawals,
		TransfersOut:        s.TransfersOut,
		TransfersIn:         s.TransfersIn,
		TotalDeposited:      domain.FormatAmount(s.TotalDeposited),
		TotalWithdrawn:      domain.FormatAmount(s.TotalWithdrawn),
		TotalTransferredOut: domain.FormatAmount(s.TotalTransferredOut),
		TotalTransferredIn:  domain.FormatAmount(s.TotalTransferredIn),
	}
}
