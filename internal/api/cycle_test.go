package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/mocks"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCycleRouter(userID uuid.UUID) (*gin.Engine, *mocks.MockCycleService) {
	svc := new(mocks.MockCycleService)
	return setupTestRouter(userID, NewCycleHandler(svc).RegisterRoutes), svc
}

func TestSaveCycleEntry(t *testing.T) {
	userID := uuid.New()
	router, svc := setupCycleRouter(userID)

	w := performRequest(t, router, http.MethodPost, "/api/cycle_entries", gin.H{
		"date": "2024-05-01", "flow_intensity": "torrential",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "flow_intensity must be one of: none light medium heavy", decodeBody(t, w)["error"])

	entry := &models.CycleEntry{ID: uuid.New(), UserID: userID, Date: "2024-05-01", FlowIntensity: models.FlowHeavy}
	svc.On("UpsertEntry", mock.Anything, userID, mock.MatchedBy(func(req *types.CycleEntryRequest) bool {
		return req.FlowIntensity == models.FlowHeavy && len(req.Symptoms) == 2
	})).Return(entry, nil)

	w = performRequest(t, router, http.MethodPost, "/api/cycle_entries", gin.H{
		"date": "2024-05-01", "flow_intensity": "heavy", "symptoms": []string{"cramps", "fatigue"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "heavy", decodeBody(t, w)["flow_intensity"])
}

func TestCycleSettingsEmptyUntilSaved(t *testing.T) {
	userID := uuid.New()
	router, svc := setupCycleRouter(userID)
	svc.On("GetSettings", mock.Anything, userID).Return(nil, nil).Once()

	w := performRequest(t, router, http.MethodGet, "/api/cycle_settings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())

	settings := &models.CycleSettings{UserID: userID, CycleLength: 30, PeriodLength: models.DefaultPeriodLength}
	svc.On("UpdateSettings", mock.Anything, userID, mock.MatchedBy(func(req *types.CycleSettingsRequest) bool {
		return req.CycleLength != nil && *req.CycleLength == 30 && req.PeriodLength == nil
	})).Return(settings, nil)

	w = performRequest(t, router, http.MethodPut, "/api/cycle_settings", gin.H{"cycle_length": 30})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(30), decodeBody(t, w)["cycle_length"])
	svc.AssertExpectations(t)
}

func TestCyclePredictions(t *testing.T) {
	userID := uuid.New()
	router, svc := setupCycleRouter(userID)
	prediction := &types.CyclePrediction{
		NextPeriod:      "2024-05-29",
		OvulationDate:   "2024-05-15",
		FertileWindow:   types.DateRange{Start: "2024-05-10", End: "2024-05-16"},
		CurrentCycleDay: 10,
	}
	svc.On("Predict", mock.Anything, userID).Return(prediction, nil).Once()

	w := performRequest(t, router, http.MethodGet, "/api/cycle_predictions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"next_period": "2024-05-29",
		"ovulation_date": "2024-05-15",
		"fertile_window": {"start": "2024-05-10", "end": "2024-05-16"},
		"current_cycle_day": 10
	}`, w.Body.String())

	svc.On("Predict", mock.Anything, userID).Return(nil, service.ErrNoCycleData).Once()
	w = performRequest(t, router, http.MethodGet, "/api/cycle_predictions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCycleStats(t *testing.T) {
	userID := uuid.New()
	router, svc := setupCycleRouter(userID)
	svc.On("Stats", mock.Anything, userID).Return(&types.CycleStats{TotalEntries: 3, AvgMood: 6.5, PeriodDays: 2}, nil)

	w := performRequest(t, router, http.MethodGet, "/api/cycle_stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_entries":3,"avg_mood":6.5,"period_days":2}`, w.Body.String())
}
