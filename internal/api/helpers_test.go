package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/middleware"
	"github.com/stretchr/testify/require"
)

// SetUserIDInContext stands in for the auth middleware.
func SetUserIDInContext(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

// setupTestRouter mounts register under /api behind a fake authenticated user.
func setupTestRouter(userID uuid.UUID, register func(*gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	router := gin.New()
	group := router.Group("/api")
	group.Use(SetUserIDInContext(userID))
	register(group)
	return router
}

func performRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
