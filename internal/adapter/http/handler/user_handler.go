package handler

import (
	"strconv"

	"demo-credit/internal/adapter/http/dto"
	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's profile.
type UserHandler struct {
	userSvc ports.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc ports.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetMe handles GET /api/v1/users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewUserResponse(user))
}

// UpdateMe handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, ports.UpdateProfileRequest{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(user.ID, 10))
	response.OK(c, dto.NewUserResponse(user))
}
