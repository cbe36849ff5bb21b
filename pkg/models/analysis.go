// Package models contains shared data models used across the FieldScout codebase.
package models

// Severity is the coarse field-stress tier attached to analyses, insights and alerts.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// AnalysisResult is the full output of one image analysis, returned by POST /analyze.
// NDVI here is the display-scaled VARI proxy index in [0, 1], not a satellite NDVI.
type AnalysisResult struct {
	NDVI         float64   `json:"ndvi"`
	AffectedArea float64   `json:"affectedArea"`
	Severity     Severity  `json:"severity"`
	Confidence   float64   `json:"confidence"`
	Timestamp    string    `json:"timestamp"`
	ImageName    string    `json:"imageName"`
	HeatmapURL   string    `json:"heatmapUrl"`
	RGBURL       string    `json:"rgbUrl"`
	Insights     []Insight `json:"insights"`
}

// Insight is a single human-readable diagnostic produced from classifier output.
// Icon is a pass-through label for frontend rendering; the backend attaches no
// meaning to it beyond matching the severity tier.
type Insight struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Severity        Severity `json:"severity"`
	Icon            string   `json:"icon"`
	Zone            string   `json:"zone,omitempty"`
	Confidence      float64  `json:"confidence,omitempty"`
	Recommendations []string `json:"recommendations"`
}
