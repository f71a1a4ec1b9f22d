package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(rl *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/chat", func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterWithoutRedisIsDisabled(t *testing.T) {
	router := rateLimitedRouter(NewChatRateLimiter(nil, 1), uuid.New())

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewChatRateLimiter(client, 2)
	rl.now = func() time.Time { return time.Date(2024, 5, 31, 10, 15, 0, 0, time.UTC) }
	router := rateLimitedRouter(rl, uuid.New())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/chat", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1717153200", last.Header().Get("X-RateLimit-Reset"))

	// Another user has a separate budget.
	other := rateLimitedRouter(rl, uuid.New())
	rr := httptest.NewRecorder()
	other.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
