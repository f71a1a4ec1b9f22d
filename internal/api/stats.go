package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/internal/service"
)

// StatsHandler serves the read-only views derived from a user's history.
type StatsHandler struct {
	statsService   service.IStatsService
	insightService service.IInsightService
	exportService  service.IExportService
	now            func() time.Time
}

func NewStatsHandler(stats service.IStatsService, insights service.IInsightService, export service.IExportService) *StatsHandler {
	return &StatsHandler{
		statsService:   stats,
		insightService: insights,
		exportService:  export,
		now:            time.Now,
	}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.Stats)
	router.GET("/insights", h.Insights)
	router.GET("/export/data", h.Export)
}

func (h *StatsHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.statsService.Summarize(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) Insights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	insights, err := h.insightService.Insights(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to build insights")
		return
	}
	c.JSON(http.StatusOK, insights)
}

// Export streams the CSV only after it was fully rendered, so a failure
// midway still produces a JSON error.
func (h *StatsHandler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteCSV(c.Request.Context(), userID, &buf); err != nil {
		respondError(c, err, "failed to export data")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+service.ExportFilename(h.now()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
