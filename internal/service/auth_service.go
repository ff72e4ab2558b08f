package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo  ports.UserRepository
	hashSvc   ports.HashService
	tokenSvc  ports.TokenService
	verifier  ports.IdentityVerifier
	blocklist ports.TokenBlocklist
	log       zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	verifier ports.IdentityVerifier,
	blocklist ports.TokenBlocklist,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		hashSvc:   hashSvc,
		tokenSvc:  tokenSvc,
		verifier:  verifier,
		blocklist: blocklist,
		log:       log,
	}
}

// Register creates a new user account once the email clears the identity check.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	// Check username uniqueness
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	// Check email uniqueness
	existing, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	allowed, err := s.verifier.Verify(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrIdentityCheckFailed(err)
	}
	if !allowed {
		return nil, apperror.ErrIdentityBlacklisted()
	}

	// Hash password with Argon2id
	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			return nil, apperror.ErrUsernameExists()
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, apperror.ErrEmailExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login validates credentials and returns a JWT token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	// Verify password
	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	// Generate JWT
	token, expiry, err := s.tokenSvc.Generate(user.ID, user.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}

// Logout revokes the token until it would have expired on its own.
func (s *AuthServiceImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokenSvc.Validate(tokenString)
	if err != nil {
		return apperror.ErrInvalidToken()
	}

	if err := s.blocklist.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		return apperror.InternalError(fmt.Errorf("revoke token: %w", err))
	}

	s.log.Info().Int64("user_id", claims.UserID).Msg("user logged out")
	return nil
}

var _ ports.AuthService = (*AuthServiceImpl)(nil)
