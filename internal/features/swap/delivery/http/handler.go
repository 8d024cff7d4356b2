package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/errors"
	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/swap/models"
	"fishing-game-backend/internal/features/swap/service"
)

type SwapHandler struct {
	service service.SwapService
}

func NewSwapHandler(service service.SwapService) *SwapHandler {
	return &SwapHandler{service: service}
}

func (h *SwapHandler) RegisterRoutes(router *gin.RouterGroup, sessionGate gin.HandlerFunc) {
	swap := router.Group("/swap", sessionGate)
	{
		swap.POST("/execute", h.execute)
	}
}

// @Summary Swap fish balance for USDC
// @Tags swap
// @Accept json
// @Produce json
// @Param request body models.ExecuteRequest true "Swap order"
// @Success 200 {object} models.ExecuteResponse
// @Failure 400 {object} middleware.ErrorResponse "Amount below minimum or insufficient balance"
// @Failure 429 {object} middleware.ErrorResponse "Cooldown active"
// @Router /swap/execute [post]
func (h *SwapHandler) execute(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid swap request"))
		return
	}

	result, err := h.service.Execute(c.Request.Context(), fid, req.Amount)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
