package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"fishing-game-backend/internal/common/errors"
)

// SessionChecker reports whether a live session marker exists for a fid.
type SessionChecker interface {
	HasSession(ctx context.Context, fid int64) (bool, error)
}

// RequireSession gates mutating game routes on a live session marker. It runs
// before any business validation so unauthenticated callers learn nothing
// about the state behind the route. Developer fids bypass the gate.
func RequireSession(sessions SessionChecker, isDeveloper func(int64) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		fid, ok := GetFID(c)
		if !ok {
			RespondError(c, errors.New(errors.ErrCodeUnauthorizedSession, "No authenticated identity"))
			return
		}

		if isDeveloper(fid) {
			c.Next()
			return
		}

		alive, err := sessions.HasSession(c.Request.Context(), fid)
		if err != nil {
			RespondError(c, errors.Wrap(err, errors.ErrCodeStore, "Session lookup failed"))
			return
		}
		if !alive {
			RespondError(c, errors.New(errors.ErrCodeUnauthorizedSession, "Session missing or expired"))
			return
		}

		c.Next()
	}
}
