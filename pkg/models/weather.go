package models

// WeatherDay is one day of forecast, either mapped from the upstream provider
// or synthesized by the fallback simulator. Date is "YYYY-MM-DD".
type WeatherDay struct {
	Date     string  `json:"date"`
	TempMax  float64 `json:"temp_max"`
	TempMin  float64 `json:"temp_min"`
	Rain     float64 `json:"rain"`
	Humidity float64 `json:"humidity"`
	Wind     float64 `json:"wind"`
}

// AlertType identifies which correlation rule produced a predictive alert.
type AlertType string

const (
	AlertHeatStress  AlertType = "Heat Stress"
	AlertDiseaseRisk AlertType = "Disease Risk"
	AlertWaterStress AlertType = "Water Stress"
	AlertStability   AlertType = "Stability Report"
)

// Alert is a forecast-day-scoped warning correlating weather conditions with
// the latest vegetation stress reading.
type Alert struct {
	Date     string    `json:"date"`
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// Location echoes the requested coordinates back in the weather response.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
