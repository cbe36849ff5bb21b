// Package history persists the bounded, ordered series of past analysis
// readings. Two backends implement the same narrow Store interface: a JSON
// flat file (the default) and Postgres, selected at startup by configuration.
package history

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"fieldscout/pkg/models"
)

const (
	// MaxEntries caps the series; the oldest entries are evicted first.
	MaxEntries = 12
	// Threshold is the fixed reference line attached to every entry.
	Threshold = 0.4

	seedCount = 7
	seedBase  = 0.45
	seedStep  = 0.03

	// stampLayout matches the wire format consumed by the dashboard chart.
	stampLayout = "2006-01-02 15:04"
)

// Store is the history access interface. Append is a read-modify-write over
// shared persisted state; implementations must serialize it so concurrent
// appends cannot lose updates.
type Store interface {
	// Load returns the current ordered series, substituting a synthetic
	// baseline when no usable persisted state exists.
	Load(ctx context.Context) ([]models.HistoryEntry, error)
	// Append stamps and stores a new reading, evicts from the front down to
	// MaxEntries, persists the full series and returns it.
	Append(ctx context.Context, index float64, filename string) ([]models.HistoryEntry, error)
	// Ping checks backend availability.
	Ping(ctx context.Context) error
}

// Seed builds the synthetic baseline series returned when history is empty:
// seven weekly readings trending gently upward from 0.45 with a small
// non-negative jitter. The generator is injected so tests stay deterministic.
func Seed(rng *rand.Rand) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0, seedCount)
	for i := 1; i <= seedCount; i++ {
		entries = append(entries, models.HistoryEntry{
			Date:      fmt.Sprintf("Week %d", i),
			NDVI:      round2(seedBase + float64(i)*seedStep + rng.Float64()*0.05),
			Threshold: Threshold,
		})
	}
	return entries
}

// appended returns the series with one new stamped reading added and the
// front evicted down to MaxEntries. Pure; shared by both backends.
func appended(entries []models.HistoryEntry, index float64, filename string, now time.Time) []models.HistoryEntry {
	out := append(entries, models.HistoryEntry{
		Date:      fmt.Sprintf("Scan %d", len(entries)+1),
		NDVI:      index,
		Threshold: Threshold,
		Filename:  filename,
		Timestamp: now.Format(stampLayout),
	})
	if len(out) > MaxEntries {
		out = out[len(out)-MaxEntries:]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
