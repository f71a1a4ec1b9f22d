package api

import (
	"errors"
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

func setupMoodRouter(userID uuid.UUID) (*gin.Engine, *mocks.MockMoodService) {
	svc := new(mocks.MockMoodService)
	router := setupTestRouter(userID, NewMoodHandler(svc).RegisterRoutes)
	return router, svc
}

func TestSaveMood(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)

	entry := &models.MoodEntry{ID: uuid.New(), UserID: userID, Date: "2024-05-01", Mood: 7}
	svc.On("UpsertMood", mock.Anything, userID, mock.MatchedBy(func(req *types.MoodEntryRequest) bool {
		return req.Date == "2024-05-01" && *req.Mood == 7 && req.Note == "ok"
	})).Return(entry, nil)

	w := performRequest(t, router, http.MethodPost, "/api/mood_entries", gin.H{
		"date": "2024-05-01", "mood": 7, "note": "ok",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "2024-05-01", body["date"])
	assert.Equal(t, float64(7), body["mood"])
	svc.AssertExpectations(t)
}

func TestSaveMoodValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing mood", gin.H{"date": "2024-05-01"}, "mood is required"},
		{"mood above range", gin.H{"date": "2024-05-01", "mood": 11}, "mood must be at most 10"},
		{"mood below range", gin.H{"date": "2024-05-01", "mood": 0.5}, "mood must be at least 1"},
		{"bad date", gin.H{"date": "2024-02-30", "mood": 5}, "date must be a date in YYYY-MM-DD format"},
		{"not json", "{", "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupMoodRouter(uuid.New())

			w := performRequest(t, router, http.MethodPost, "/api/mood_entries", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeBody(t, w)["error"])
			svc.AssertNotCalled(t, "UpsertMood", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListMoodsPassesDateFilter(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)
	svc.On("ListMoods", mock.Anything, userID, "2024-05-01").Return([]models.MoodEntry{}, nil)

	w := performRequest(t, router, http.MethodGet, "/api/mood_entries?date=2024-05-01", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	svc.AssertExpectations(t)
}

func TestListMoodsInvalidDate(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)
	svc.On("ListMoods", mock.Anything, userID, "yesterday").Return(nil, service.ErrInvalidDate)

	w := performRequest(t, router, http.MethodGet, "/api/mood_entries?date=yesterday", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMood(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)
	id := uuid.New()
	svc.On("DeleteMood", mock.Anything, userID, id).Return(int64(0), nil)

	w := performRequest(t, router, http.MethodDelete, "/api/mood_entries/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"affected":0}`, w.Body.String())

	w = performRequest(t, router, http.MethodDelete, "/api/mood_entries/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid id", decodeBody(t, w)["error"])
}

func TestTodayMood(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)
	svc.On("TodayMood", mock.Anything, userID).Return(&types.TodayMood{Mood: 5}, nil)

	w := performRequest(t, router, http.MethodGet, "/api/today_mood", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mood":5,"note":""}`, w.Body.String())
}

func TestListHourlyRequiresDate(t *testing.T) {
	router, svc := setupMoodRouter(uuid.New())

	w := performRequest(t, router, http.MethodGet, "/api/hourly_moods", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListHourly", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveHourly(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)

	w := performRequest(t, router, http.MethodPost, "/api/hourly_moods", gin.H{
		"date": "2024-05-01", "hour": 24, "mood": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "hour must be at most 23", decodeBody(t, w)["error"])

	entry := &models.HourlyMood{ID: uuid.New(), UserID: userID, Date: "2024-05-01", Hour: 0, Mood: 5}
	svc.On("UpsertHourly", mock.Anything, userID, mock.Anything).Return(entry, nil)

	w = performRequest(t, router, http.MethodPost, "/api/hourly_moods", gin.H{
		"date": "2024-05-01", "hour": 0, "mood": 5,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["hour"])
}

func TestMoodServiceFailureIsInternal(t *testing.T) {
	userID := uuid.New()
	router, svc := setupMoodRouter(userID)
	svc.On("TodayMood", mock.Anything, userID).Return(nil, errors.New("connection refused"))

	w := performRequest(t, router, http.MethodGet, "/api/today_mood", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to load today's mood", decodeBody(t, w)["error"])
}

func TestMissingUserIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockMoodService)
	router := gin.New()
	NewMoodHandler(svc).RegisterRoutes(router.Group("/api"))

	w := performRequest(t, router, http.MethodGet, "/api/today_mood", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
