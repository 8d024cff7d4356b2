package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/errors"
	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/shop/models"
	"fishing-game-backend/internal/features/shop/service"
)

type ShopHandler struct {
	service service.ShopService
}

func NewShopHandler(service service.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

func (h *ShopHandler) RegisterRoutes(router *gin.RouterGroup, sessionGate gin.HandlerFunc) {
	boat := router.Group("/boat")
	{
		boat.GET("/tiers", h.listTiers)
		boat.POST("/select", sessionGate, h.selectBoat)
	}
}

func (h *ShopHandler) listTiers(c *gin.Context) {
	c.JSON(http.StatusOK, models.BoatTiers)
}

// @Summary Select a boat tier
// @Description Activates a boat tier for the authenticated player. Paid tiers are upgrade-only; selecting tier 0 switches the player to free mode.
// @Tags shop
// @Accept json
// @Produce json
// @Param request body models.SelectRequest true "Tier selection"
// @Success 200 {object} models.SelectResponse
// @Router /boat/select [post]
func (h *ShopHandler) selectBoat(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid request body"))
		return
	}

	resp, err := h.service.SelectBoat(c.Request.Context(), fid, req.Tier)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
