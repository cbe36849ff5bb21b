package weather

import (
	"fmt"

	"fieldscout/pkg/models"
)

const (
	// DefaultLatestIndex stands in for the latest reading when history is empty.
	DefaultLatestIndex = 0.5
	// MaxAlerts caps the returned alert list. The cap is positional
	// (day-then-rule order), not severity-ranked: alerts that fire on later
	// days are dropped regardless of severity. Documented limitation.
	MaxAlerts = 5
)

// alertRule evaluates one forecast day against the latest index reading and
// reports whether it fires. Rules are independent: a single day may emit one
// alert per rule.
type alertRule func(day models.WeatherDay, latestIndex float64) (models.Alert, bool)

// alertRules is evaluated per day in this fixed order.
var alertRules = []alertRule{
	heatStress,
	diseaseRisk,
	waterStress,
}

func heatStress(day models.WeatherDay, latestIndex float64) (models.Alert, bool) {
	if !(day.TempMax > 28 && latestIndex < 0.7) {
		return models.Alert{}, false
	}
	severity := models.SeverityMedium
	if day.TempMax > 35 {
		severity = models.SeverityHigh
	}
	return models.Alert{
		Date:     day.Date,
		Type:     models.AlertHeatStress,
		Severity: severity,
		Message:  fmt.Sprintf("Elevated temperature (%v°C). Transpiration stress likely in low-density zones.", day.TempMax),
	}, true
}

func diseaseRisk(day models.WeatherDay, _ float64) (models.Alert, bool) {
	if !(day.Humidity > 75 && day.TempMax > 15 && day.TempMax < 30) {
		return models.Alert{}, false
	}
	return models.Alert{
		Date:     day.Date,
		Type:     models.AlertDiseaseRisk,
		Severity: models.SeverityMedium,
		Message:  fmt.Sprintf("Humidity (%v%%) + Temp is optimal for fungal growth. Increase monitoring.", day.Humidity),
	}, true
}

func waterStress(day models.WeatherDay, latestIndex float64) (models.Alert, bool) {
	if !(day.Rain < 0.1 && day.TempMax > 26 && latestIndex < 0.6) {
		return models.Alert{}, false
	}
	return models.Alert{
		Date:     day.Date,
		Type:     models.AlertWaterStress,
		Severity: models.SeverityMedium,
		Message:  "Dry spell detected. Soil moisture deficit predicted for current vegetation health.",
	}, true
}

// LatestIndex returns the most recent reading's index, or DefaultLatestIndex
// when the history is empty.
func LatestIndex(entries []models.HistoryEntry) float64 {
	if len(entries) == 0 {
		return DefaultLatestIndex
	}
	return entries[len(entries)-1].NDVI
}

// CorrelateAlerts cross-references every forecast day against the latest
// stored index. When no rule fires for any day, exactly one Stability Report
// dated on the first forecast day is synthesized. The result is truncated to
// the first MaxAlerts entries.
func CorrelateAlerts(forecast []models.WeatherDay, latestIndex float64) []models.Alert {
	var alerts []models.Alert
	for _, day := range forecast {
		for _, rule := range alertRules {
			if alert, ok := rule(day, latestIndex); ok {
				alerts = append(alerts, alert)
			}
		}
	}

	if len(alerts) == 0 && len(forecast) > 0 {
		alerts = append(alerts, models.Alert{
			Date:     forecast[0].Date,
			Type:     models.AlertStability,
			Severity: models.SeverityLow,
			Message:  "Favorable meteorology. Current conditions support optimal photosynthesis and growth.",
		})
	}

	if len(alerts) > MaxAlerts {
		alerts = alerts[:MaxAlerts]
	}
	return alerts
}
