package analysis

import (
	"image"
	"image/color"
	"math"
)

// Heatmap renders an index map as a false-color raster of identical
// dimensions. Each cell is first scaled to 8-bit grayscale via
// g = round((v+1)/2 * 255), then mapped through a fixed jet-style palette:
// blue for low values, through cyan/yellow, to red for high values.
func Heatmap(m *IndexMap) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			g := uint8(math.Round((m.At(x, y) + 1) / 2 * 255))
			out.SetRGBA(x, y, jetColor(g))
		}
	}
	return out
}

// jetColor maps an 8-bit intensity onto the jet palette. The piecewise ramps
// reproduce the classic colormap: 0 is dark blue, 255 is dark red.
func jetColor(v uint8) color.RGBA {
	t := float64(v) / 255
	r := jetChannel(4*t - 1.5, -4*t + 4.5)
	g := jetChannel(4*t - 0.5, -4*t + 3.5)
	b := jetChannel(4*t + 0.5, -4*t + 2.5)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func jetChannel(up, down float64) uint8 {
	v := clamp(math.Min(up, down), 0, 1)
	return uint8(math.Round(v * 255))
}
