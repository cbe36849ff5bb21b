package models

// HistoryEntry is one reading in the bounded analysis time series.
//
// The JSON keys mirror the persisted wire format consumed by the dashboard
// frontend: "date" is a display label ("Week 3", "Scan 9"), not a calendar
// date; Timestamp carries the wall-clock stamp for appended scans. Entries
// are immutable once written and leave the series only by FIFO eviction.
type HistoryEntry struct {
	Date      string  `json:"date"`
	NDVI      float64 `json:"ndvi"`
	Threshold float64 `json:"threshold"`
	Filename  string  `json:"filename,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}
