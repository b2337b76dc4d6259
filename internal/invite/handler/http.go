// Package handler exposes invite code activation over HTTP.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"phone-auth-service/internal/invite/service"
	"phone-auth-service/internal/server/middleware"
	"phone-auth-service/internal/server/response"
	"phone-auth-service/internal/validation"
)

// InviteHandler serves the invite activation endpoint.
type InviteHandler struct {
	invites *service.InviteService
	logger  *zap.Logger
}

// NewInviteHandler returns an InviteHandler.
func NewInviteHandler(invites *service.InviteService, logger *zap.Logger) *InviteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InviteHandler{invites: invites, logger: logger}
}

// Register mounts the invite routes on the given authenticated router group.
func (h *InviteHandler) Register(r gin.IRoutes) {
	r.POST("/users/activate-invite-code", h.Activate)
}

type activateRequest struct {
	InviteCode string `json:"invite_code"`
}

type activateResponse struct {
	InviteCode string `json:"invite_code"`
}

// Activate handles POST /users/activate-invite-code.
func (h *InviteHandler) Activate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.invites.Activate(c.Request.Context(), userID, req.InviteCode); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, activateResponse{InviteCode: req.InviteCode})
}

func (h *InviteHandler) writeError(c *gin.Context, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.FieldError(c, fieldErr.Field, fieldErr.Message)
	case errors.Is(err, service.ErrAlreadyActivated):
		response.BadRequest(c, "invite code already activated")
	case errors.Is(err, service.ErrInviteCodeNotFound):
		response.BadRequest(c, "invite code not found")
	case errors.Is(err, service.ErrSelfReferral):
		response.BadRequest(c, "cannot activate own invite code")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		h.logger.Error("invite activation failed", zap.Error(err))
		response.Internal(c)
	}
}
