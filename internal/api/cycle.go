package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/lumi-diary/lumi/backend/internal/types"
)

type CycleHandler struct {
	cycleService service.ICycleService
}

func NewCycleHandler(cycleService service.ICycleService) *CycleHandler {
	return &CycleHandler{cycleService: cycleService}
}

func (h *CycleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/cycle_entries", h.ListEntries)
	router.POST("/cycle_entries", h.SaveEntry)
	router.DELETE("/cycle_entries/:id", h.DeleteEntry)

	router.GET("/cycle_settings", h.GetSettings)
	router.PUT("/cycle_settings", h.UpdateSettings)

	router.GET("/cycle_stats", h.Stats)
	router.GET("/cycle_predictions", h.Predictions)
}

func (h *CycleHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.cycleService.ListEntries(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err, "failed to list cycle entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *CycleHandler) SaveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CycleEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.cycleService.UpsertEntry(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to save cycle entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *CycleHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.cycleService.DeleteEntry(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to delete cycle entry")
		return
	}
	affected(c, n)
}

// GetSettings answers with an empty object until the user saves settings.
func (h *CycleHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.cycleService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load cycle settings")
		return
	}
	if settings == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *CycleHandler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CycleSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.cycleService.UpdateSettings(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to update cycle settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *CycleHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.cycleService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to compute cycle statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *CycleHandler) Predictions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	prediction, err := h.cycleService.Predict(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to predict cycle")
		return
	}
	c.JSON(http.StatusOK, prediction)
}
