package weather

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fieldscout/internal/cache"
	"fieldscout/internal/observability"
	"fieldscout/pkg/models"
)

const (
	// fetchTimeout bounds the single upstream attempt; after it fires the
	// request proceeds synchronously into the fallback path.
	fetchTimeout = 10 * time.Second
	// cacheTTL keeps live forecasts fresh enough for dashboard polling.
	cacheTTL = 10 * time.Minute
)

// Service resolves a forecast via cache, then the live provider, then the
// simulator. The fallback is a substitution, not a retry: one upstream
// attempt per call, and simulated results are never cached.
type Service struct {
	client  Client
	sim     *Simulator
	cache   cache.Cache
	metrics *observability.Metrics
}

// NewService creates a Service. Metrics may be nil in tests.
func NewService(client Client, sim *Simulator, c cache.Cache, metrics *observability.Metrics) *Service {
	return &Service{client: client, sim: sim, cache: c, metrics: metrics}
}

// Forecast returns exactly `days` WeatherDay records when falling back, or up
// to `days` from the live provider. It never returns an error: upstream
// unavailability is recovered locally.
func (s *Service) Forecast(ctx context.Context, lat, lon float64, days int) []models.WeatherDay {
	key := cache.ForecastKey(lat, lon, days)
	if data, found, err := s.cache.Get(ctx, key); err == nil && found {
		var cached []models.WeatherDay
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
			return cached
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	forecast, err := s.client.Forecast(fetchCtx, lat, lon, days)
	if err == nil && len(forecast) > 0 {
		if data, merr := json.Marshal(forecast); merr == nil {
			_ = s.cache.Set(ctx, key, data, cacheTTL)
		}
		return forecast
	}

	slog.Warn("weather upstream unavailable, using simulated forecast",
		"lat", lat, "lon", lon, "error", err)
	if s.metrics != nil {
		s.metrics.WeatherFallbacks.Inc()
	}
	return s.sim.Forecast(days)
}
