package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

func setupStatsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	wellness, stats, _ := newTestServices()

	r := gin.New()
	r.Use(injectUser)
	api := r.Group("/api/v1")
	adapterHTTP.NewWellnessHandler(wellness, time.UTC, logger.NewNop()).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(stats, time.UTC, logger.NewNop()).RegisterRoutes(api)

	return r
}

func TestGetOverview(t *testing.T) {
	r := setupStatsRouter()

	for _, body := range []gin.H{
		{"date": "2026-10-13", "reacted_calmly": true, "avoided_snapping": true},
		{"date": "2026-10-14", "was_kinder": true},
		{"date": "2026-10-15"},
	} {
		require.Equal(t, http.StatusCreated, doJSON(r, "POST", "/api/v1/checkins", "user-1", body).Code)
	}

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/stats/overview", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.Overview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
		assert.Equal(t, 3, overview.CurrentStreak)
		assert.Equal(t, 3, overview.CheckIns)
		assert.True(t, overview.CheckedInToday)
		// 3 of 15 answers were yes.
		assert.Equal(t, 20, overview.SuccessRate)
	})

	t.Run("Auckland is already a day ahead", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/stats/overview", "user-1", nil, adapterHTTP.TimezoneHeader, "Pacific/Auckland")
		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.Overview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
		assert.Equal(t, 3, overview.CurrentStreak)
		assert.False(t, overview.CheckedInToday)
	})

	t.Run("Fail: Unauthorized", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/stats/overview", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetWeekly(t *testing.T) {
	r := setupStatsRouter()

	w := doJSON(r, "GET", "/api/v1/stats/weekly", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary domain.WeeklySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "2026-10-11", summary.WeekStart)
	assert.Equal(t, 0, summary.ThisWeekCount)
	assert.Equal(t, domain.InsightStart, summary.InsightKind)
}

func TestGetCalendar(t *testing.T) {
	r := setupStatsRouter()
	require.Equal(t, http.StatusCreated, doJSON(r, "POST", "/api/v1/checkins", "user-1", gin.H{"date": "2026-09-30"}).Code)

	t.Run("Defaults to current month", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/stats/calendar", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var cal domain.MonthCalendar
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
		assert.Equal(t, "2026-10", cal.Month)
		assert.Equal(t, 31, cal.DaysInMonth)
		assert.Equal(t, 0, cal.CheckedInDays)
	})

	t.Run("Explicit month", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/stats/calendar?month=2026-09", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var cal domain.MonthCalendar
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
		assert.Equal(t, 1, cal.CheckedInDays)
		assert.Equal(t, domain.QualityLow, cal.Days[30])
	})

	t.Run("Fail: Bad month", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/stats/calendar?month=2026-13", "user-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
