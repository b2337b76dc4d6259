// Package handler exposes the health endpoint for load balancers and CI.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks database connectivity. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker verifies that the policy engine can compile and evaluate
// its policy.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler reports readiness of the service's dependencies.
type HealthHandler struct {
	db     Pinger
	policy PolicyChecker
}

// NewHealthHandler returns a HealthHandler. Nil dependencies are skipped.
func NewHealthHandler(db Pinger, policy PolicyChecker) *HealthHandler {
	return &HealthHandler{db: db, policy: policy}
}

// Register mounts the health route on the given router.
func (h *HealthHandler) Register(r gin.IRoutes) {
	r.GET("/health", h.Check)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Check handles GET /health. Returns 200 when all dependencies are healthy,
// 503 otherwise.
func (h *HealthHandler) Check(c *gin.Context) {
	resp := healthResponse{Status: "ok", Checks: map[string]string{}}

	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			resp.Status = "unavailable"
			resp.Checks["database"] = err.Error()
		} else {
			resp.Checks["database"] = "ok"
		}
	}
	if h.policy != nil {
		if err := h.policy.HealthCheck(c.Request.Context()); err != nil {
			resp.Status = "unavailable"
			resp.Checks["policy"] = err.Error()
		} else {
			resp.Checks["policy"] = "ok"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
