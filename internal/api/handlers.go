package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/middleware"
	"github.com/lumi-diary/lumi/backend/internal/service"
)

// statusFor maps service sentinels to HTTP status codes.
var statusFor = []struct {
	err    error
	status int
}{
	{service.ErrInvalidDate, http.StatusBadRequest},
	{service.ErrEmptyText, http.StatusBadRequest},
	{service.ErrNotImage, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
	{service.ErrPasswordTooShort, http.StatusBadRequest},
	{service.ErrUsernameTooShort, http.StatusBadRequest},
	{service.ErrInvalidGender, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusBadRequest},
	{service.ErrNoCycleData, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrUserExists, http.StatusConflict},
}

// respondError writes err as a JSON error. Unknown errors become a generic 500
// and are attached to the context for the request logger.
func respondError(c *gin.Context, err error, fallback string) {
	for _, m := range statusFor {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.err.Error()})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return false
	}
	return true
}

// affected is the response of delete and toggle operations. Rows owned by
// other users are reported as zero affected, never as an error.
func affected(c *gin.Context, n int64) {
	c.JSON(http.StatusOK, gin.H{"success": true, "affected": n})
}
