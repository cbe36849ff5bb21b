package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscout/internal/api/handler"
	"fieldscout/internal/dashboard"
	"fieldscout/pkg/models"
)

func TestDashboard_AggregatesHistory(t *testing.T) {
	store := &stubStore{entries: []models.HistoryEntry{
		{Date: "Week 1", NDVI: 0.25},
		{Date: "Scan 2", NDVI: 0.7},
	}}
	h := handler.NewDashboardHandler(store, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard-stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats dashboard.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 87, stats.FieldHealthScore)
	assert.Equal(t, 1, stats.AnomaliesDetected)
	assert.Len(t, stats.History, 2)
	require.Len(t, stats.GlobalInsights, 1)
	assert.Equal(t, "Irrigation Efficiency", stats.GlobalInsights[0].Title)
}

func TestDashboard_HistoryFailure(t *testing.T) {
	h := handler.NewDashboardHandler(&stubStore{loadErr: errStubDown}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard-stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
