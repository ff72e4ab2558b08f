package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"demo-credit/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	// IssueCSRFToken returns a token bound to subject, valid until it is older than ttl.
	IssueCSRFToken(subject string) string
	VerifyCSRFToken(subject string, token string, ttl time.Duration) bool
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID int64, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID    int64
	Username  string
	TokenID   string // jti
	ExpiresAt time.Time
}

// IdentityVerifier checks a prospective user against an external blacklist.
type IdentityVerifier interface {
	// Verify returns (true, nil) when the identity may register.
	Verify(ctx context.Context, email string) (bool, error)
}

// IdempotencyCache is the Redis-layer idempotency store for replayed API responses.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Reserve marks key as in flight. Returns false if another request holds it.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// TokenBlocklist tracks revoked token IDs until they would have expired anyway.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// --- Service Ports (Business Logic) ---

// LedgerService holds the balance-mutation and record-append primitives.
// Both run inside a caller-owned transaction that already holds the wallet row lock.
type LedgerService interface {
	ApplyDelta(ctx context.Context, tx pgx.Tx, walletID int64, delta decimal.Decimal) (*domain.Wallet, error)
	AppendRecord(ctx context.Context, tx pgx.Tx, walletID int64, kind domain.RecordKind, amount decimal.Decimal, details string) (*domain.TransactionRecord, error)
}

// WalletService defines savings-wallet business logic.
type WalletService interface {
	CreateDefaultWallet(ctx context.Context, userID int64) (*domain.Wallet, error)
	CreateCustomWallet(ctx context.Context, userID int64, firstName, lastName string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*MoneyResult, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*MoneyResult, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]domain.TransactionRecord, error)
}

// MoneyResult is the outcome of a single-wallet mutation.
type MoneyResult struct {
	Wallet *domain.Wallet            `json:"wallet"`
	Record *domain.TransactionRecord `json:"record"`
}

// TransferRequest holds validated input for a transfer.
// Exactly one of BeneficiaryEmail or BeneficiaryName identifies the destination.
type TransferRequest struct {
	UserID           int64
	BeneficiaryEmail string
	BeneficiaryName  string // "First Last"
	BankCode         string // Optional
	Amount           decimal.Decimal
}

// TransferResult is the outcome of a transfer as seen by the sender.
type TransferResult struct {
	Wallet      *domain.Wallet            `json:"wallet"`
	Record      *domain.TransactionRecord `json:"record"`
	Beneficiary string                    `json:"beneficiary"`
}

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
	Logout(ctx context.Context, tokenString string) error
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService defines profile business logic.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error)
}

// UpdateProfileRequest holds optional profile changes. Nil fields are left alone.
type UpdateProfileRequest struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	GetStats(ctx context.Context, userID int64, period string) (*TransactionStats, error)
	ListTransactions(ctx context.Context, userID int64, params TransactionListParams) ([]domain.TransactionRecord, int64, error)
}

// AuditService records audit events.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
