package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscout/internal/dashboard"
	"fieldscout/pkg/models"
)

func entriesWithLatest(ndvi float64) []models.HistoryEntry {
	return []models.HistoryEntry{
		{Date: "Week 1", NDVI: 0.5},
		{Date: "Scan 2", NDVI: ndvi},
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.HistoryEntry
		want    int
	}{
		{"empty history", nil, 0},
		{"latest at reference", entriesWithLatest(0.8), 100},
		{"above reference clamps", entriesWithLatest(0.95), 100},
		{"half reference", entriesWithLatest(0.4), 50},
		{"fraction truncates", entriesWithLatest(0.55), 68},
		{"negative clamps to zero", entriesWithLatest(-0.2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.HealthScore(tt.entries))
		})
	}
}

func TestHealthScore_UsesLatestOnly(t *testing.T) {
	entries := []models.HistoryEntry{
		{Date: "Week 1", NDVI: 0.1},
		{Date: "Week 2", NDVI: 0.1},
		{Date: "Scan 3", NDVI: 0.8},
	}
	assert.Equal(t, 100, dashboard.HealthScore(entries))
}

func TestAnomalies(t *testing.T) {
	entries := []models.HistoryEntry{
		{NDVI: 0.29},
		{NDVI: 0.3},
		{NDVI: 0.12},
		{NDVI: 0.7},
	}
	assert.Equal(t, 2, dashboard.Anomalies(entries))
	assert.Zero(t, dashboard.Anomalies(nil))
}

func TestBuild_HealthyField(t *testing.T) {
	stats := dashboard.Build(entriesWithLatest(0.7)) // score 87

	assert.Equal(t, 87, stats.FieldHealthScore)
	assert.Equal(t, "Maintain current irrigation levels", stats.Recommendations[0])
	require.Len(t, stats.GlobalInsights, 1)

	insight := stats.GlobalInsights[0]
	assert.Equal(t, "irrigation", insight.ID)
	assert.Equal(t, "Irrigation Efficiency", insight.Title)
	assert.Equal(t, models.SeverityLow, insight.Severity)
	assert.Equal(t, "Droplets", insight.Icon)
	assert.Equal(t, "Full Coverage", insight.Zone)
	assert.Equal(t, 92.1, insight.Confidence)
	assert.Equal(t, []string{"No adjustment needed"}, insight.Recommendations)
	assert.Contains(t, insight.Description, "Overall health is 87%")
}

func TestBuild_StressedField(t *testing.T) {
	stats := dashboard.Build(entriesWithLatest(0.4)) // score 50

	assert.Equal(t, "Increase irrigation in stressed sectors", stats.Recommendations[0])
	require.Len(t, stats.GlobalInsights, 1)
	assert.Equal(t, models.SeverityMedium, stats.GlobalInsights[0].Severity)
	assert.Equal(t, []string{"Re-verify nozzle pressure"}, stats.GlobalInsights[0].Recommendations)
}

func TestBuild_SeverityAroundHealthyBoundary(t *testing.T) {
	below := dashboard.Build(entriesWithLatest(0.59)) // score 73
	assert.Equal(t, models.SeverityMedium, below.GlobalInsights[0].Severity)

	above := dashboard.Build(entriesWithLatest(0.61)) // score 76
	assert.Equal(t, models.SeverityLow, above.GlobalInsights[0].Severity)
}

func TestBuild_EmptyHistory(t *testing.T) {
	stats := dashboard.Build(nil)

	assert.NotNil(t, stats.History, "history marshals as [] rather than null")
	assert.Zero(t, stats.FieldHealthScore)
	assert.Zero(t, stats.AnomaliesDetected)
	assert.Len(t, stats.Recommendations, 3)
}
