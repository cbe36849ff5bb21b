package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"fieldscout/internal/api/response"
	"fieldscout/internal/history"
	"fieldscout/internal/observability"
	"fieldscout/internal/weather"
	"fieldscout/pkg/models"
)

// Default viewport when the caller supplies no coordinates.
const (
	defaultLat  = 34.05
	defaultLon  = -118.24
	defaultDays = 7
)

type weatherQuery struct {
	Lat  float64 `validate:"gte=-90,lte=90"`
	Lon  float64 `validate:"gte=-180,lte=180"`
	Days int     `validate:"gte=1,lte=16"`
}

// Forecaster resolves a daily forecast. It never fails; upstream problems
// are recovered with a simulated forecast.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64, days int) []models.WeatherDay
}

type weatherResponse struct {
	Forecast         []models.WeatherDay `json:"forecast"`
	PredictiveAlerts []models.Alert      `json:"predictive_alerts"`
	Location         models.Location     `json:"location"`
}

// NewWeatherHandler returns the handler for GET /weather. The forecast is
// cross-referenced with the latest stored reading into predictive alerts.
func NewWeatherHandler(svc Forecaster, store history.Store, metrics *observability.Metrics) http.HandlerFunc {
	validate := validator.New()
	return func(w http.ResponseWriter, r *http.Request) {
		q := weatherQuery{Lat: defaultLat, Lon: defaultLon, Days: defaultDays}
		var err error
		if raw := r.URL.Query().Get("lat"); raw != "" {
			if q.Lat, err = strconv.ParseFloat(raw, 64); err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_QUERY", "lat must be a number", nil)
				return
			}
		}
		if raw := r.URL.Query().Get("lon"); raw != "" {
			if q.Lon, err = strconv.ParseFloat(raw, 64); err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_QUERY", "lon must be a number", nil)
				return
			}
		}
		if raw := r.URL.Query().Get("days"); raw != "" {
			if q.Days, err = strconv.Atoi(raw); err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_QUERY", "days must be an integer", nil)
				return
			}
		}
		if err := validate.Struct(q); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_QUERY",
				"lat must be in [-90,90], lon in [-180,180], days in [1,16]", nil)
			return
		}

		forecast := svc.Forecast(r.Context(), q.Lat, q.Lon, q.Days)

		// Alerts still work without history; the default reading stands in.
		entries, err := store.Load(r.Context())
		if err != nil {
			slog.Warn("loading history for alert correlation", "error", err)
			entries = nil
		}

		alerts := weather.CorrelateAlerts(forecast, weather.LatestIndex(entries))
		if metrics != nil {
			metrics.AlertsEmitted.Add(float64(len(alerts)))
		}
		if alerts == nil {
			alerts = []models.Alert{}
		}

		response.JSON(w, weatherResponse{
			Forecast:         forecast,
			PredictiveAlerts: alerts,
			Location:         models.Location{Lat: q.Lat, Lon: q.Lon},
		})
	}
}
