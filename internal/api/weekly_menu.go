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

// MenuPlanner is implemented by service.WeeklyMenuService
type MenuPlanner interface {
	GenerateMeal(ctx context.Context, in service.GenerateMealInput) (*service.GenerateMealResult, error)
	GenerateWeek(ctx context.Context, userID string) (*models.WeeklyMenu, error)
	SwapMeal(ctx context.Context, in service.SwapMealInput) (*models.WeeklyMenu, error)
	ShoppingList(ctx context.Context, userID, menuID string) (*service.ShoppingList, error)
	CurrentMenu(ctx context.Context, userID string) (*models.WeeklyMenu, error)
}

type WeeklyMenuHandler struct {
	planner MenuPlanner
	logger  *zap.Logger
}

func NewWeeklyMenuHandler(planner MenuPlanner, logger *zap.Logger) *WeeklyMenuHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeeklyMenuHandler{planner: planner, logger: logger}
}

// RegisterRoutes mounts the weekly menu routes. generationLimits run before
// the two generation endpoints only.
func (h *WeeklyMenuHandler) RegisterRoutes(router *gin.RouterGroup, generationLimits ...gin.HandlerFunc) {
	menus := router.Group("/weekly-menu")
	{
		menus.POST("/generate-meal", withLimits(generationLimits, h.GenerateMeal)...)
		menus.POST("/generate", withLimits(generationLimits, h.GenerateWeek)...)
		menus.POST("/swap-meal", h.SwapMeal)
		menus.POST("/shopping-list", h.ShoppingList)
		menus.GET("/current", h.CurrentMenu)
	}
}

func withLimits(limits []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(limits)+1)
	chain = append(chain, limits...)
	return append(chain, h)
}

type generateMealResponse struct {
	Meal     *models.Recipe  `json:"meal"`
	Day      models.Day      `json:"day"`
	MealType models.MealType `json:"mealType"`
	MenuID   string          `json:"menuId"`
	Fallback bool            `json:"fallback,omitempty"`
}

func (h *WeeklyMenuHandler) GenerateMeal(c *gin.Context) {
	var req types.GenerateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, err := actingUser(c, req.Owner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.planner.GenerateMeal(c.Request.Context(), service.GenerateMealInput{
		UserID:   uid,
		Day:      req.Day,
		MealType: req.MealType,
		MenuID:   req.MenuID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, generateMealResponse{
		Meal:     result.Meal,
		Day:      result.Day,
		MealType: result.MealType,
		MenuID:   result.MenuID.Hex(),
		Fallback: result.Fallback,
	})
}

func (h *WeeklyMenuHandler) GenerateWeek(c *gin.Context) {
	var req types.GenerateWeekRequest
	// a missing body binds as empty and fails the owner check below
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	uid, err := actingUser(c, req.Owner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	menu, err := h.planner.GenerateWeek(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "menu": menu})
}

func (h *WeeklyMenuHandler) SwapMeal(c *gin.Context) {
	var req types.SwapMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, err := actingUser(c, req.Owner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	menu, err := h.planner.SwapMeal(c.Request.Context(), service.SwapMealInput{
		UserID:    uid,
		MenuID:    req.MenuID,
		DayIndex:  *req.DayIndex,
		MealIndex: *req.MealIndex,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "menu": menu})
}

func (h *WeeklyMenuHandler) ShoppingList(c *gin.Context) {
	var req types.ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, err := actingUser(c, req.Owner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.planner.ShoppingList(c.Request.Context(), uid, req.MenuID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"shoppingList": list.Items,
		"byCategory":   list.ByCategory,
		"byStore":      list.ByStore,
		"totalItems":   list.TotalItems,
	})
}

func (h *WeeklyMenuHandler) CurrentMenu(c *gin.Context) {
	menu, err := h.planner.CurrentMenu(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, service.ErrMenuNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": true, "menu": nil, "nutritionSummary": nil, "hasMenu": false})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"menu":             menu,
		"nutritionSummary": menu.NutritionSummary(),
		"hasMenu":          true,
	})
}
