package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	environment string
	ping        func(ctx context.Context) error
}

// NewHealthHandler creates a health handler. ping may be nil.
func NewHealthHandler(environment string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{environment: environment, ping: ping}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	database := "not configured"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code, database = "unhealthy", http.StatusServiceUnavailable, "unreachable"
		} else {
			database = "connected"
		}
	}

	c.JSON(code, gin.H{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
		"database":    database,
	})
}
