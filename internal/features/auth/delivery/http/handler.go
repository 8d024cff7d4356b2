package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/errors"
	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/auth/models"
	"fishing-game-backend/internal/features/auth/service"
)

type AuthHandler struct {
	service *service.Service
}

func NewAuthHandler(service *service.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/challenge", h.challenge)
		auth.POST("/verify", h.verify)
	}
}

func (h *AuthHandler) challenge(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.service.Challenge(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) verify(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid request body"))
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), fid, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
