// Package handler exposes the authentication flow over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"phone-auth-service/internal/auth/service"
	"phone-auth-service/internal/server/response"
	"phone-auth-service/internal/validation"
)

// AuthHandler serves the code request, verification, and refresh endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
	// echoCode controls whether the auth code is returned in the
	// request-auth-code response. Test mode only; rejected at startup in
	// production.
	echoCode bool
}

// NewAuthHandler returns an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger, echoCode bool) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, logger: logger, echoCode: echoCode}
}

// Register mounts the auth routes on the given router.
func (h *AuthHandler) Register(r gin.IRoutes) {
	r.POST("/request-auth-code", h.RequestCode)
	r.POST("/authenticate", h.Authenticate)
	r.POST("/refresh-token", h.Refresh)
}

type requestCodeRequest struct {
	Phone string `json:"phone"`
}

type requestCodeResponse struct {
	Phone              string `json:"phone"`
	AuthenticationCode string `json:"authentication_code,omitempty"`
}

// RequestCode handles POST /request-auth-code.
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req requestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	code, err := h.auth.RequestCode(c.Request.Context(), req.Phone)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := requestCodeResponse{Phone: req.Phone}
	if h.echoCode {
		resp.AuthenticationCode = code
	}
	response.OK(c, resp)
}

type authenticateRequest struct {
	Phone              string `json:"phone"`
	AuthenticationCode string `json:"authentication_code"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Authenticate handles POST /authenticate.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	pair, err := h.auth.VerifyAndIssueTokens(c.Request.Context(), req.Phone, req.AuthenticationCode)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, tokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh handles POST /refresh-token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, tokenResponse{Access: pair.AccessToken})
}

func (h *AuthHandler) writeError(c *gin.Context, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.FieldError(c, fieldErr.Field, fieldErr.Message)
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, service.ErrAuthenticationFailed):
		response.Error(c, http.StatusUnauthorized, "authentication failed")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, "invalid or expired refresh token")
	default:
		h.logger.Error("auth request failed", zap.Error(err))
		response.Internal(c)
	}
}
