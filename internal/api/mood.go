package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/lumi-diary/lumi/backend/internal/types"
)

// MoodHandler serves daily and hourly mood records.
type MoodHandler struct {
	moodService service.IMoodService
}

func NewMoodHandler(moodService service.IMoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

func (h *MoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/mood_entries", h.ListMoods)
	router.POST("/mood_entries", h.SaveMood)
	router.DELETE("/mood_entries/:id", h.DeleteMood)
	router.GET("/today_mood", h.TodayMood)

	router.GET("/hourly_moods", h.ListHourly)
	router.POST("/hourly_moods", h.SaveHourly)
	router.DELETE("/hourly_moods/:id", h.DeleteHourly)
}

func (h *MoodHandler) ListMoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.moodService.ListMoods(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err, "failed to list mood entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *MoodHandler) SaveMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.MoodEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.moodService.UpsertMood(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to save mood entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *MoodHandler) DeleteMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.moodService.DeleteMood(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to delete mood entry")
		return
	}
	affected(c, n)
}

func (h *MoodHandler) TodayMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	today, err := h.moodService.TodayMood(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load today's mood")
		return
	}
	c.JSON(http.StatusOK, today)
}

func (h *MoodHandler) ListHourly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	entries, err := h.moodService.ListHourly(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err, "failed to list hourly moods")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *MoodHandler) SaveHourly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.HourlyMoodRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.moodService.UpsertHourly(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to save hourly mood")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *MoodHandler) DeleteHourly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.moodService.DeleteHourly(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to delete hourly mood")
		return
	}
	affected(c, n)
}
