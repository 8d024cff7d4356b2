package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/spin/service"
)

type SpinHandler struct {
	service service.SpinService
}

func NewSpinHandler(service service.SpinService) *SpinHandler {
	return &SpinHandler{service: service}
}

func (h *SpinHandler) RegisterRoutes(router *gin.RouterGroup, sessionGate gin.HandlerFunc) {
	spin := router.Group("/spin", sessionGate)
	{
		spin.POST("/execute", h.execute)
		spin.POST("/daily", h.claimDaily)
	}
}

// @Summary Spin the wheel
// @Description Burns one ticket and rolls the server-side prize table.
// @Tags spin
// @Produce json
// @Success 200 {object} models.SpinResult
// @Failure 402 {object} middleware.ErrorResponse "No tickets"
// @Router /spin/execute [post]
func (h *SpinHandler) execute(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.service.Execute(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SpinHandler) claimDaily(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.service.ClaimDaily(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
