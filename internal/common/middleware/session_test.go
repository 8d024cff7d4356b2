package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSessions struct {
	alive map[int64]bool
}

func (f *fakeSessions) HasSession(_ context.Context, fid int64) (bool, error) {
	return f.alive[fid], nil
}

func gateRouter(sessions SessionChecker, isDeveloper func(int64) bool, fid int64, setFID bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			if setFID {
				c.Set(FIDCtxParam, fid)
			}
			c.Next()
		},
		RequireSession(sessions, isDeveloper),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return router
}

func noDevs(int64) bool { return false }

func TestRequireSessionRejectsWithoutIdentity(t *testing.T) {
	router := gateRouter(&fakeSessions{}, noDevs, 0, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionRejectsExpiredSession(t *testing.T) {
	router := gateRouter(&fakeSessions{alive: map[int64]bool{}}, noDevs, 100, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED_SESSION")
}

func TestRequireSessionPassesLiveSession(t *testing.T) {
	router := gateRouter(&fakeSessions{alive: map[int64]bool{100: true}}, noDevs, 100, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionDeveloperBypass(t *testing.T) {
	router := gateRouter(&fakeSessions{}, func(fid int64) bool { return fid == 500 }, 500, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
