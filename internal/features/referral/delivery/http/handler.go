package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/referral/service"
)

type ReferralHandler struct {
	service service.Evaluator
}

func NewReferralHandler(service service.Evaluator) *ReferralHandler {
	return &ReferralHandler{service: service}
}

func (h *ReferralHandler) RegisterRoutes(router *gin.RouterGroup, sessionGate gin.HandlerFunc) {
	referral := router.Group("/referral", sessionGate)
	{
		referral.GET("/stats", h.stats)
	}
}

func (h *ReferralHandler) stats(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.service.Stats(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
