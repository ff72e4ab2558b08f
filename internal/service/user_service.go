package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
)

// userService implements ports.UserService.
type userService struct {
	userRepo ports.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo ports.UserRepository) ports.UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile returns the user's profile (without the password hash).
func (s *userService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of req. Username and email stay unique.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req ports.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, apperror.Validation("username cannot be blank")
		}
		if username != user.Username {
			other, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
			}
			if other != nil && other.ID != user.ID {
				return nil, apperror.ErrUsernameExists()
			}
			user.Username = username
		}
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, apperror.Validation("email cannot be blank")
		}
		if !strings.EqualFold(email, user.Email) {
			other, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
			}
			if other != nil && other.ID != user.ID {
				return nil, apperror.ErrEmailExists()
			}
		}
		user.Email = email
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			return nil, apperror.ErrUsernameExists()
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, apperror.ErrEmailExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("update user: %w", err))
	}

	return user, nil
}
