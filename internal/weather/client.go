// Package weather retrieves daily forecasts, substitutes a simulated forecast
// when the upstream provider fails, and correlates forecast days with the
// latest vegetation stress reading into predictive alerts.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"fieldscout/pkg/models"
)

// Sentinel errors for upstream forecast failures. Callers treat them all the
// same way (fall back to simulation); the distinction exists for logs.
var (
	ErrUpstreamUnreachable = errors.New("weather upstream unreachable")
	ErrUpstreamStatus      = errors.New("weather upstream non-200 status")
	ErrUpstreamTimeout     = errors.New("weather upstream timeout")
	ErrUpstreamDecode      = errors.New("weather upstream malformed payload")
)

// Client is the interface for fetching a daily forecast.
type Client interface {
	Forecast(ctx context.Context, lat, lon float64, days int) ([]models.WeatherDay, error)
}

// dailyFields are the per-day variables requested from the provider.
const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum,relativehumidity_2m_max,windspeed_10m_max"

// OpenMeteoClient implements Client against the Open-Meteo daily forecast API.
// A circuit breaker shields a dead upstream: once open, calls fail fast and the
// caller proceeds straight to the simulated fallback.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]models.WeatherDay]
}

// NewOpenMeteoClient creates a client with the given base URL and per-request
// timeout.
func NewOpenMeteoClient(baseURL string, timeout time.Duration) *OpenMeteoClient {
	cb := gobreaker.NewCircuitBreaker[[]models.WeatherDay](gobreaker.Settings{
		Name:        "open-meteo",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &OpenMeteoClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

// Forecast issues a single forecast request. No retries: any failure is
// returned to the caller, which substitutes the simulated forecast.
func (c *OpenMeteoClient) Forecast(ctx context.Context, lat, lon float64, days int) ([]models.WeatherDay, error) {
	forecast, err := c.breaker.Execute(func() ([]models.WeatherDay, error) {
		return c.fetch(ctx, lat, lon, days)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: circuit open", ErrUpstreamUnreachable)
	}
	return forecast, err
}

func (c *OpenMeteoClient) fetch(ctx context.Context, lat, lon float64, days int) ([]models.WeatherDay, error) {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(lon, 'f', -1, 64)},
		"daily":     {dailyFields},
		"timezone":  {"auto"},
	}
	u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamDecode, err)
	}

	return mapDaily(payload, days)
}

type openMeteoResponse struct {
	Daily struct {
		Time     []string  `json:"time"`
		TempMax  []float64 `json:"temperature_2m_max"`
		TempMin  []float64 `json:"temperature_2m_min"`
		Rain     []float64 `json:"precipitation_sum"`
		Humidity []float64 `json:"relativehumidity_2m_max"`
		Wind     []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// mapDaily converts the provider's column-oriented payload into up to `days`
// WeatherDay records. A payload without the expected shape is a decode error.
func mapDaily(payload openMeteoResponse, days int) ([]models.WeatherDay, error) {
	d := payload.Daily
	if len(d.Time) == 0 {
		return nil, fmt.Errorf("%w: missing daily.time", ErrUpstreamDecode)
	}

	n := days
	if len(d.Time) < n {
		n = len(d.Time)
	}
	if len(d.TempMax) < n || len(d.TempMin) < n || len(d.Rain) < n || len(d.Humidity) < n || len(d.Wind) < n {
		return nil, fmt.Errorf("%w: daily arrays shorter than time axis", ErrUpstreamDecode)
	}

	forecast := make([]models.WeatherDay, 0, n)
	for i := 0; i < n; i++ {
		forecast = append(forecast, models.WeatherDay{
			Date:     d.Time[i],
			TempMax:  d.TempMax[i],
			TempMin:  d.TempMin[i],
			Rain:     d.Rain[i],
			Humidity: d.Humidity[i],
			Wind:     d.Wind[i],
		})
	}
	return forecast, nil
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
}
