package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/middleware"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/types"
)

// ProfileService is implemented by service.ProfileService
type ProfileService interface {
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	DeleteAccount(ctx context.Context, uid string) (*service.AccountDeletion, error)
}

type ProfileHandler struct {
	profileService ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{profileService: profileService, logger: logger}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/users/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteAccount)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Email == "" {
		req.Email = middleware.UserEmail(c)
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// DeleteAccount removes the caller's account. The owner may be named in the
// body or the query string.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	var owner types.Owner
	if err := c.ShouldBindJSON(&owner); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	if owner.OwnerID() == "" {
		if err := c.ShouldBindQuery(&owner); err != nil {
			badRequest(c, err)
			return
		}
	}
	uid, err := actingUser(c, owner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res, err := h.profileService.DeleteAccount(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            "Account deleted successfully",
		"deletedFromMongoDB": res.ProfileDeleted,
		"deletedMenus":       res.MenusDeleted,
	})
}
