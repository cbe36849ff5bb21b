package handler

import (
	"image"
	"log/slog"
	"net/http"
	"time"

	// Drone uploads arrive as JPEG or PNG.
	_ "image/jpeg"
	_ "image/png"

	"github.com/jonboulle/clockwork"

	"fieldscout/internal/analysis"
	"fieldscout/internal/api/response"
	"fieldscout/internal/history"
	"fieldscout/internal/observability"
	"fieldscout/pkg/models"
)

// maxUploadBytes caps the multipart form held in memory during decode.
const maxUploadBytes = 20 << 20

// ArtifactSaver persists the uploaded frame and its heatmap, returning their
// URL paths.
type ArtifactSaver interface {
	SavePair(original, heatmap image.Image) (string, string, error)
}

// NewAnalyzeHandler returns the handler for POST /analyze. It decodes the
// uploaded frame, computes the vegetation index, persists the artifacts,
// appends to history and returns the full analysis payload.
func NewAnalyzeHandler(store history.Store, artifacts ArtifactSaver, metrics *observability.Metrics, clock clockwork.Clock) http.HandlerFunc {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		outcome := "error"
		defer func() {
			if metrics != nil {
				metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
				metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
			}
		}()

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			outcome = "invalid_image"
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Multipart form with a file field is required", nil)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			outcome = "invalid_image"
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "file field is required", nil)
			return
		}
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			outcome = "invalid_image"
			response.Error(w, http.StatusBadRequest, "INVALID_IMAGE", "Invalid image file", nil)
			return
		}

		indexMap, mean := analysis.ComputeVARI(img)
		heatmap := analysis.Heatmap(indexMap)

		rgbURL, heatmapURL, err := artifacts.SavePair(img, heatmap)
		if err != nil {
			slog.Error("saving analysis artifacts", "error", err, "image", header.Filename)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not persist analysis artifacts", nil)
			return
		}

		cls := analysis.Classify(indexMap, mean, img)

		entries, err := store.Append(r.Context(), cls.DisplayIndex, header.Filename)
		if err != nil {
			slog.Error("appending to history", "error", err, "image", header.Filename)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not persist scan history", nil)
			return
		}
		if metrics != nil {
			metrics.HistoryEntries.Set(float64(len(entries)))
		}

		outcome = "ok"
		response.JSON(w, models.AnalysisResult{
			NDVI:         cls.DisplayIndex,
			AffectedArea: cls.AffectedArea,
			Severity:     cls.Severity,
			Confidence:   cls.Confidence,
			Timestamp:    clock.Now().UTC().Format("2006-01-02T15:04:05Z"),
			ImageName:    header.Filename,
			HeatmapURL:   heatmapURL,
			RGBURL:       rgbURL,
			Insights:     []models.Insight{analysis.GenerateInsight(cls)},
		})
	}
}
