package analysis

import (
	"image"
	"math"

	"github.com/montanaflynn/stats"

	"fieldscout/pkg/models"
)

// stressThreshold marks a cell as stressed when its index falls below it.
const stressThreshold = 0.05

// Classification is the classifier's summary of one index map.
type Classification struct {
	DisplayIndex float64 // mean index shifted into [0, 1], 2 decimals
	AffectedArea float64 // percent of stressed cells, 1 decimal
	Severity     models.Severity
	Confidence   float64 // [80.0, 99.9], 1 decimal
}

// Classify derives the severity tier and confidence score from an index map,
// its mean, and the original image (for sharpness).
func Classify(m *IndexMap, mean float64, img image.Image) Classification {
	display := DisplayIndex(mean)
	affected := AffectedArea(m)
	return Classification{
		DisplayIndex: display,
		AffectedArea: affected,
		Severity:     SeverityFor(affected),
		Confidence:   Confidence(Sharpness(img)),
	}
}

// DisplayIndex shifts a raw mean VARI value into the [0, 1] display range,
// rounded to 2 decimals.
func DisplayIndex(mean float64) float64 {
	return round2(clamp(mean+0.5, 0, 1))
}

// AffectedArea returns the percentage of cells below the stress threshold,
// rounded to 1 decimal.
func AffectedArea(m *IndexMap) float64 {
	if len(m.Values) == 0 {
		return 0
	}
	stressed := 0
	for _, v := range m.Values {
		if v < stressThreshold {
			stressed++
		}
	}
	return round1(float64(stressed) / float64(len(m.Values)) * 100)
}

// severityBands is evaluated top-down; the first band whose floor is exceeded
// wins. Floors are exclusive: exactly 35.0 percent affected is Medium.
var severityBands = []struct {
	floor float64
	tier  models.Severity
}{
	{35, models.SeverityHigh},
	{15, models.SeverityMedium},
}

// SeverityFor maps an affected-area percentage onto its severity tier.
func SeverityFor(affectedArea float64) models.Severity {
	for _, band := range severityBands {
		if affectedArea > band.floor {
			return band.tier
		}
	}
	return models.SeverityLow
}

// Confidence converts an image-sharpness measure into a bounded confidence
// score: clamp(85 + sharpness/500, 80, 99.9), rounded to 1 decimal.
func Confidence(sharpness float64) float64 {
	return round1(clamp(85+sharpness/500, 80, 99.9))
}

// Sharpness measures focus quality as the population variance of a Laplacian
// edge response over the image's luma plane. Blurry images yield values near
// zero; crisp imagery yields large ones.
func Sharpness(img image.Image) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	luma := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pr, pg, pb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma[y*w+x] = 0.299*float64(pr>>8) + 0.587*float64(pg>>8) + 0.114*float64(pb>>8)
		}
	}

	// 4-neighbour Laplacian over the interior.
	response := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := luma[(y-1)*w+x] + luma[(y+1)*w+x] + luma[y*w+x-1] + luma[y*w+x+1] - 4*luma[y*w+x]
			response = append(response, lap)
		}
	}

	variance, err := stats.PopulationVariance(response)
	if err != nil {
		return 0
	}
	return variance
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
