package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	claims *types.TokenClaims
}

func (v stubValidator) ValidateToken(_ context.Context, token string) (*types.TokenClaims, error) {
	if token != "good-token" {
		return nil, errors.New("bad token")
	}
	return v.claims, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	validator := stubValidator{claims: &types.TokenClaims{UserID: userID, Username: "alice"}}

	router := gin.New()
	router.GET("/me", AuthMiddleware(validator), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.MustGet(ContextUserID).(uuid.UUID).String(),
			"username": c.GetString(ContextUsername),
		})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized},
		{"valid token", "Bearer good-token", http.StatusOK},
		{"lower-case scheme", "bearer good-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":"`+userID.String()+`","username":"alice"}`, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), `"error"`)
			}
		})
	}
}
