package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/errors"
	"fishing-game-backend/internal/common/middleware"
	"fishing-game-backend/internal/features/player/service"
)

type PlayerHandler struct {
	service service.PlayerService
}

func NewPlayerHandler(service service.PlayerService) *PlayerHandler {
	return &PlayerHandler{service: service}
}

func (h *PlayerHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
	}
	router.GET("/fish/balance", h.getBalance)
}

// @Summary Get current player
// @Description Get or lazily create the player record for the authenticated fid. A ?ref= query binds the referrer for first-seen users.
// @Tags players
// @Produce json
// @Success 200 {object} service.ProfileResponse
// @Router /users/me [get]
func (h *PlayerHandler) getMe(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// The referral link ("?ref=<fid>") is only honored on first contact.
	referrer, _ := strconv.ParseInt(c.Query("ref"), 10, 64)
	profile, err := h.service.Profile(c.Request.Context(), fid, referrer)
	if err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeStore, "Failed to load player"))
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *PlayerHandler) getBalance(c *gin.Context) {
	fid, ok := middleware.GetFID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), fid)
	if err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeStore, "Failed to load balance"))
		return
	}

	c.JSON(http.StatusOK, balance)
}
