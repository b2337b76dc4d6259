// Package handler exposes user profiles over HTTP.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"phone-auth-service/internal/server/middleware"
	"phone-auth-service/internal/server/response"
	"phone-auth-service/internal/user/repository"
	"phone-auth-service/internal/user/service"
	"phone-auth-service/internal/validation"
)

// UserHandler serves the profile read and update endpoints.
type UserHandler struct {
	profiles *service.ProfileService
	logger   *zap.Logger
}

// NewUserHandler returns a UserHandler.
func NewUserHandler(profiles *service.ProfileService, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{profiles: profiles, logger: logger}
}

// Register mounts the profile routes on the given authenticated router group.
// The :phone parameter is URL-decoded by gin, so "+12025550123" arrives
// intact when the client sends %2B12025550123.
func (h *UserHandler) Register(r gin.IRoutes) {
	r.GET("/users/:phone", h.Get)
	r.PATCH("/users/:phone", h.Update)
}

// Get handles GET /users/:phone.
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), userID, c.Param("phone"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, profile)
}

type updateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Update handles PATCH /users/:phone. Absent fields are left untouched;
// phone and invite_code are read-only and ignored if submitted.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	upd := repository.ProfileUpdate{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	profile, err := h.profiles.Update(c.Request.Context(), userID, c.Param("phone"), upd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, profile)
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.FieldError(c, fieldErr.Field, fieldErr.Message)
	case errors.Is(err, repository.ErrDuplicateUsername):
		response.FieldError(c, "username", "username already taken")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "access denied")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		h.logger.Error("profile request failed", zap.Error(err))
		response.Internal(c)
	}
}
