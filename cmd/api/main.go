package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"demo-credit/config"
	httpHandler "demo-credit/internal/adapter/http/handler"
	"demo-credit/internal/adapter/http/web"
	pgStorage "demo-credit/internal/adapter/storage/postgres"
	redisStorage "demo-credit/internal/adapter/storage/redis"
	"demo-credit/internal/core/ports"
	"demo-credit/internal/service"
	"demo-credit/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("pages", cfg.Server.EnablePages).
		Msg("Starting Demo Credit wallet service")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("DC_JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database schema")
		}
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool, cfg.Database.LockTimeout)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	blocklist := redisStorage.NewTokenBlocklist(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	csrfKey := cfg.Session.CSRFKey
	if csrfKey == "" {
		sum := sha256.Sum256([]byte("csrf|" + cfg.JWT.Secret))
		csrfKey = hex.EncodeToString(sum[:])
	}
	sigSvc := service.NewHMACSignatureService(csrfKey)
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	var verifier ports.IdentityVerifier = service.NoopVerifier{}
	if cfg.Karma.Enabled {
		verifier = service.NewKarmaVerifier(cfg.Karma.BaseURL, cfg.Karma.APIKey, &http.Client{Timeout: cfg.Karma.Timeout}, log)
	} else {
		log.Warn().Msg("Karma identity check disabled, every registration is allowed")
	}

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc, verifier, blocklist, log)
	userSvc := service.NewUserService(userRepo)
	ledgerSvc := service.NewLedgerService(walletRepo, txRepo)
	walletSvc := service.NewWalletService(walletRepo, userRepo, txRepo, ledgerSvc, transactor, log)
	reportingSvc := service.NewReportingService(txRepo, walletRepo)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile(cfg.Server.OpenAPIPath); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	var pages *web.Pages
	if cfg.Server.EnablePages {
		pages, err = web.New(web.Deps{
			AuthSvc:      authSvc,
			UserSvc:      userSvc,
			WalletSvc:    walletSvc,
			ReportingSvc: reportingSvc,
			TokenSvc:     tokenSvc,
			Blocklist:    blocklist,
			SigSvc:       sigSvc,
			CookieName:   cfg.Session.CookieName,
			SecureCookie: cfg.Session.Secure,
			Logger:       log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load page templates")
		}
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		UserSvc:        userSvc,
		WalletSvc:      walletSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		Blocklist:      blocklist,
		IdemCache:      idempotencyCache,
		IdempotencyTTL: cfg.Server.IdempotencyTTL,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:       auditSvc,
		Pages:          pages,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
