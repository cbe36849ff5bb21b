// Package dashboard aggregates the stored scan history into the summary
// payload the dashboard polls.
package dashboard

import (
	"fmt"
	"math"

	"fieldscout/pkg/models"
)

const (
	// healthReference is the index value mapped to a 100% health score.
	healthReference = 0.8
	// anomalyThreshold marks a stored reading as an anomaly.
	anomalyThreshold = 0.3
	// healthyScore gates insight severity: above it the field reads Low.
	healthyScore = 75
	// optimalScore gates the irrigation recommendations.
	optimalScore = 80
)

// Stats is the aggregated dashboard payload.
type Stats struct {
	History           []models.HistoryEntry `json:"history"`
	FieldHealthScore  int                   `json:"field_health_score"`
	AnomaliesDetected int                   `json:"anomalies_detected"`
	Recommendations   []string              `json:"recommendations"`
	GlobalInsights    []models.Insight      `json:"global_insights"`
}

// HealthScore maps the latest stored reading onto a 0-100 scale against the
// reference index. An empty history scores 0.
func HealthScore(entries []models.HistoryEntry) int {
	if len(entries) == 0 {
		return 0
	}
	latest := entries[len(entries)-1].NDVI
	score := latest / healthReference * 100
	return int(math.Min(math.Max(score, 0), 100))
}

// Anomalies counts stored readings below the anomaly threshold.
func Anomalies(entries []models.HistoryEntry) int {
	count := 0
	for _, e := range entries {
		if e.NDVI < anomalyThreshold {
			count++
		}
	}
	return count
}

// Build assembles the dashboard payload from the stored history.
func Build(entries []models.HistoryEntry) Stats {
	score := HealthScore(entries)

	irrigation := models.Insight{
		ID:          "irrigation",
		Title:       "Irrigation Efficiency",
		Description: fmt.Sprintf("Overall health is %d%%. Coverage is optimal across 85%% of quadrants.", score),
		Severity:    models.SeverityMedium,
		Icon:        "Droplets",
		Zone:        "Full Coverage",
		Confidence:  92.1,
		Recommendations: []string{
			"Re-verify nozzle pressure",
		},
	}
	if score > healthyScore {
		irrigation.Severity = models.SeverityLow
	}
	if score > optimalScore {
		irrigation.Recommendations = []string{"No adjustment needed"}
	}

	irrigationAdvice := "Increase irrigation in stressed sectors"
	if score > optimalScore {
		irrigationAdvice = "Maintain current irrigation levels"
	}

	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return Stats{
		History:           entries,
		FieldHealthScore:  score,
		AnomaliesDetected: Anomalies(entries),
		Recommendations: []string{
			irrigationAdvice,
			"Monitor for nitrogen deficiency in detected low-health patches",
			"Next optimal scan recommended in 3 days",
		},
		GlobalInsights: []models.Insight{irrigation},
	}
}
