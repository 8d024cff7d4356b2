package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/mining/service"
)

type MiningHandler struct {
	service service.MiningService
}

func NewMiningHandler(service service.MiningService) *MiningHandler {
	return &MiningHandler{service: service}
}

func (h *MiningHandler) RegisterRoutes(router *gin.RouterGroup, sessionGate gin.HandlerFunc) {
	mining := router.Group("/mining", sessionGate)
	{
		mining.POST("/start", h.start)
		mining.POST("/cast", h.cast)
	}
}

func (h *MiningHandler) start(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.service.Start(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Cast the fishing line
// @Description One mining attempt. Misses and rate/cap rejections are expected steady-state outcomes.
// @Tags mining
// @Produce json
// @Success 200 {object} models.CastResult
// @Failure 403 {object} middleware.ErrorResponse "Free mode"
// @Failure 410 {object} middleware.ErrorResponse "Bucket exhausted for this hour"
// @Failure 429 {object} middleware.ErrorResponse "Rate limit or cap"
// @Router /mining/cast [post]
func (h *MiningHandler) cast(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.service.Cast(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
