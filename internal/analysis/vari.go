// Package analysis implements the pure numeric core of FieldScout: the VARI
// index transform, heatmap rendering, severity classification and insight
// generation. Nothing in this package performs I/O.
package analysis

import (
	"image"
	"math"
)

// IndexMap is a dense row-major float64 raster of per-pixel VARI values.
// Every cell is guaranteed to lie in [-1, 1]; the transform never produces
// NaN or Inf.
type IndexMap struct {
	Width  int
	Height int
	Values []float64
}

// At returns the index value at (x, y). Callers must stay in bounds.
func (m *IndexMap) At(x, y int) float64 {
	return m.Values[y*m.Width+x]
}

// ComputeVARI converts a decoded color image into its per-pixel VARI map and
// the arithmetic mean over all cells.
//
// VARI = (G - R) / (G + R - B) per pixel. Cells where the denominator is
// exactly zero use a denominator of 1 instead, so the result stays finite.
// Every value is clamped to [-1, 1].
func ComputeVARI(img image.Image) (*IndexMap, float64) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	m := &IndexMap{Width: w, Height: h, Values: make([]float64, w*h)}
	var sum float64

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pr, pg, pb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r := float64(pr >> 8)
			g := float64(pg >> 8)
			b := float64(pb >> 8)

			denom := g + r - b
			if denom == 0 {
				denom = 1
			}
			v := clamp((g-r)/denom, -1, 1)

			m.Values[y*w+x] = v
			sum += v
		}
	}

	mean := 0.0
	if len(m.Values) > 0 {
		mean = sum / float64(len(m.Values))
	}
	return m, mean
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
