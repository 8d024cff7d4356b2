package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/stats/service"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(service service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// RegisterRoutes exposes the public dashboard endpoint; no session required.
func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/statistics/global", h.global)
}

// @Summary Global economy statistics
// @Tags statistics
// @Produce json
// @Success 200 {object} models.StatsResponse
// @Router /statistics/global [get]
func (h *StatsHandler) global(c *gin.Context) {
	result, err := h.service.Global(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
