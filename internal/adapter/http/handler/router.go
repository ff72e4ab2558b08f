package handler

import (
	"time"

	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/adapter/http/web"
	redisStore "demo-credit/internal/adapter/storage/redis"
	"demo-credit/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// defaultIdempotencyTTL is how long a replayable response is kept.
const defaultIdempotencyTTL = 24 * time.Hour

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	UserSvc        ports.UserService
	WalletSvc      ports.WalletService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	Blocklist      ports.TokenBlocklist       // nil = logout does not revoke
	IdemCache      ports.IdempotencyCache     // nil = Idempotency-Key ignored
	IdempotencyTTL time.Duration              // 0 = 24h
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Pages          *web.Pages         // nil = HTML pages disabled
	Mode           string             // gin mode, "" = release
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep: PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	idem := func(c *gin.Context) { c.Next() }
	if deps.IdemCache != nil {
		ttl := deps.IdempotencyTTL
		if ttl == 0 {
			ttl = defaultIdempotencyTTL
		}
		idem = middleware.Idempotency(deps.IdemCache, ttl, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Blocklist, deps.Logger)

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/logout", jwtAuth, authHandler.Logout)
	}

	// --- JWT-authenticated routes ---
	userHandler := NewUserHandler(deps.UserSvc)
	users := v1.Group("/users/me", jwtAuth)
	{
		users.GET("", rl("reads"), userHandler.GetMe)
		users.PATCH("", rl("wallet_write"), userHandler.UpdateMe)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.ReportingSvc)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.POST("", rl("wallet_write"), walletHandler.CreateCustom)
		wallets.POST("/default", rl("wallet_write"), walletHandler.CreateDefault)
		wallets.GET("/me", rl("reads"), walletHandler.GetMine)
		wallets.GET("/me/stats", rl("reads"), walletHandler.Stats)
		wallets.POST("/me/deposit", rl("wallet_money"), idem, walletHandler.Deposit)
		wallets.POST("/me/withdraw", rl("wallet_money"), idem, walletHandler.Withdraw)
		wallets.POST("/me/transfer", rl("wallet_money"), idem, walletHandler.Transfer)
	}

	transactionHandler := NewTransactionHandler(deps.ReportingSvc)
	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", rl("reads"), transactionHandler.List)
	}

	// --- Server-rendered pages ---
	if deps.Pages != nil {
		deps.Pages.Register(r, rl)
	}

	return r
}
