package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/types"
)

// AlternativeGenerator is implemented by service.AlternativeService
type AlternativeGenerator interface {
	Generate(ctx context.Context, dish service.DishDescription) (*service.VeganAlternative, error)
}

type AlternativeHandler struct {
	generator AlternativeGenerator
	logger    *zap.Logger
}

func NewAlternativeHandler(generator AlternativeGenerator, logger *zap.Logger) *AlternativeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlternativeHandler{generator: generator, logger: logger}
}

// RegisterRoutes mounts the vegan alternative route behind limits
func (h *AlternativeHandler) RegisterRoutes(router *gin.RouterGroup, limits ...gin.HandlerFunc) {
	router.POST("/dishes/vegan-alternative", withLimits(limits, h.Generate)...)
}

func (h *AlternativeHandler) Generate(c *gin.Context) {
	var req types.VeganAlternativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	alt, err := h.generator.Generate(c.Request.Context(), service.DishDescription{
		Name:        req.Name,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"veganDish":    alt.Recipe,
		"originalDish": alt.OriginalDish,
		"fallback":     alt.Fallback,
	})
}
