package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// Context keys populated by TelegramInitData.
const (
	FIDCtxParam  = "fid"
	UserCtxParam = "user"
)

// TelegramInitData validates the Mini App init_data header and stores the
// authenticated numeric user id (the player's fid) in the gin context.
// Every /api route runs behind it; handlers never trust a client-supplied id.
func TelegramInitData(botToken string, expIn time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		initDataQuery := c.GetHeader("init_data")
		if initDataQuery == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		if botToken == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}

		if err := initdata.Validate(initDataQuery, botToken, expIn); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid init data"})
			return
		}

		parsedData, err := initdata.Parse(initDataQuery)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse init data"})
			return
		}

		if parsedData.User.ID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Init data carries no user"})
			return
		}

		c.Set(FIDCtxParam, parsedData.User.ID)
		c.Set(UserCtxParam, parsedData.User)
		c.Next()
	}
}

// GetFID returns the authenticated fid stored by TelegramInitData.
func GetFID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(FIDCtxParam)
	if !exists {
		return 0, false
	}
	fid, ok := v.(int64)
	return fid, ok
}
