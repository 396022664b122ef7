package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/types"
)

// Catalog is implemented by service.CatalogService
type Catalog interface {
	ListDishes(ctx context.Context, filter service.DishFilter) ([]models.Dish, error)
	NearbyStores(ctx context.Context, lat, lng, radius float64) ([]models.Store, error)
	RecommendStores(ctx context.Context, dishID string, lat, lng, radius float64) ([]service.StoreRecommendation, error)
}

type CatalogHandler struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewCatalogHandler(catalog Catalog, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dishes", h.ListDishes)
	router.GET("/stores/nearby", h.NearbyStores)
	router.POST("/stores/recommendations-for-dish", h.RecommendStores)
}

func (h *CatalogHandler) ListDishes(c *gin.Context) {
	var q types.DishQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	dishes, err := h.catalog.ListDishes(c.Request.Context(), service.DishFilter{
		Cuisine:  q.Cuisine,
		MealType: models.MealType(q.MealType),
		Limit:    q.Limit,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if dishes == nil {
		dishes = []models.Dish{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dishes": dishes, "count": len(dishes)})
}

func (h *CatalogHandler) NearbyStores(c *gin.Context) {
	var q types.NearbyStoresQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	stores, err := h.catalog.NearbyStores(c.Request.Context(), *q.Lat, *q.Lng, q.Radius)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if stores == nil {
		stores = []models.Store{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stores": stores, "count": len(stores)})
}

func (h *CatalogHandler) RecommendStores(c *gin.Context) {
	var req types.StoreRecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recs, err := h.catalog.RecommendStores(c.Request.Context(), req.DishID, *req.Latitude, *req.Longitude, req.MaxDistance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	message := "Found stores with ingredients"
	if len(recs) == 0 {
		message = "No stores found nearby"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stores": recs, "count": len(recs), "message": message})
}
