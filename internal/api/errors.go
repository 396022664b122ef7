package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/middleware"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/types"
)

// statusFor maps a service error onto an HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMenuNotFound),
		errors.Is(err, service.ErrNoAlternativeDish),
		errors.Is(err, service.ErrDishNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Internal errors are logged
// and replaced by a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(status, middleware.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "failed to process request",
		})
		return
	}
	c.JSON(status, middleware.ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.ErrorResponse{
		Error:   "invalid request body",
		Message: err.Error(),
	})
}

// errOwnerRequired is returned when a body names no user at all
var errOwnerRequired = fmt.Errorf("%w: userId is required", service.ErrInvalidInput)

// actingUser returns the verified uid the request acts for. The body must name
// a user and it must be the token's user.
func actingUser(c *gin.Context, owner types.Owner) (string, error) {
	uid := middleware.UserID(c)
	if uid == "" {
		return "", service.ErrForbidden
	}
	claimed := owner.OwnerID()
	if claimed == "" {
		return "", errOwnerRequired
	}
	if claimed != uid {
		return "", service.ErrForbidden
	}
	return uid, nil
}
