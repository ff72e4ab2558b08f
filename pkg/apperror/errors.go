package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_004", "Email address already registered", http.StatusConflict)
}

func ErrIdentityBlacklisted() *AppError {
	return New("AUTH_005", "You have already been blacklisted", http.StatusForbidden)
}

// ---- Wallet Business Logic (WAL) ----

func ErrInsufficientFunds() *AppError {
	return New("WAL_001", "You do not have enough funds in your savings wallet", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_002", "Invalid amount", http.StatusBadRequest)
}

func ErrWalletExists() *AppError {
	return New("WAL_003", "You already have a savings wallet", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("WAL_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrBalanceLimitExceeded() *AppError {
	return New("WAL_005", "Wallet balance limit exceeded", http.StatusUnprocessableEntity)
}

func ErrBeneficiaryNotFound(who string) *AppError {
	return New("WAL_006", fmt.Sprintf("The beneficiary '%s' does not exist", who), http.StatusNotFound)
}

func ErrBeneficiaryHasNoWallet() *AppError {
	return New("WAL_007", "This beneficiary does not have a savings wallet", http.StatusUnprocessableEntity)
}

func ErrSelfTransfer() *AppError {
	return New("WAL_008", "You cannot transfer funds to your own wallet", http.StatusBadRequest)
}

func ErrNoWallet() *AppError {
	return New("WAL_009", "You do not have a savings wallet", http.StatusNotFound)
}

func ErrAmbiguousBeneficiary(who string) *AppError {
	return New("WAL_010", fmt.Sprintf("More than one wallet matches '%s', transfer by email instead", who), http.StatusConflict)
}

// ---- External dependencies (EXT) ----

func ErrIdentityCheckFailed(err error) *AppError {
	return Wrap("EXT_001", "Identity verification is unavailable", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Idempotency (IDEM) ----

func ErrRequestInFlight() *AppError {
	return New("IDEM_001", "A request with this Idempotency-Key is already being processed", http.StatusConflict)
}

func ErrIdempotencyKeyReused() *AppError {
	return New("IDEM_002", "Idempotency-Key was already used with a different request body", http.StatusUnprocessableEntity)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ErrCSRF is returned when a form post carries a missing or forged CSRF token.
func ErrCSRF() *AppError {
	return New("SEC_001", "Invalid CSRF token", http.StatusForbidden)
}
