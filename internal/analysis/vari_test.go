package analysis

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// uniformImage returns a w x h image filled with a single RGB color.
func uniformImage(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func TestComputeVARI_PureGreen(t *testing.T) {
	m, mean := ComputeVARI(uniformImage(4, 4, 0, 255, 0))

	if mean != 1.0 {
		t.Errorf("expected mean 1.0, got %v", mean)
	}
	for i, v := range m.Values {
		if v != 1.0 {
			t.Fatalf("cell %d: expected 1.0, got %v", i, v)
		}
	}
}

func TestComputeVARI_PureRed(t *testing.T) {
	m, mean := ComputeVARI(uniformImage(4, 4, 255, 0, 0))

	if mean != -1.0 {
		t.Errorf("expected mean -1.0, got %v", mean)
	}
	for i, v := range m.Values {
		if v != -1.0 {
			t.Fatalf("cell %d: expected -1.0, got %v", i, v)
		}
	}
}

func TestComputeVARI_ZeroDenominator(t *testing.T) {
	// Black pixels make G+R-B exactly 0; the substituted denominator of 1
	// must yield a defined, finite value.
	m, mean := ComputeVARI(uniformImage(3, 3, 0, 0, 0))

	if mean != 0 {
		t.Errorf("expected mean 0, got %v", mean)
	}
	for i, v := range m.Values {
		if v != 0 {
			t.Fatalf("cell %d: expected 0, got %v", i, v)
		}
	}
}

func TestComputeVARI_AllCellsBoundedAndFinite(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
	}{
		{"pure blue", 0, 0, 255},
		{"near-zero denominator", 10, 10, 19},
		{"negative denominator", 10, 20, 250},
		{"white", 255, 255, 255},
		{"mixed", 120, 200, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mean := ComputeVARI(uniformImage(5, 5, tt.r, tt.g, tt.b))
			for i, v := range m.Values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("cell %d: non-finite value %v", i, v)
				}
				if v < -1 || v > 1 {
					t.Fatalf("cell %d: value %v out of [-1, 1]", i, v)
				}
			}
			if math.IsNaN(mean) || mean < -1 || mean > 1 {
				t.Errorf("mean %v out of [-1, 1]", mean)
			}
		})
	}
}

func TestComputeVARI_Dimensions(t *testing.T) {
	m, _ := ComputeVARI(uniformImage(7, 3, 50, 100, 25))
	if m.Width != 7 || m.Height != 3 {
		t.Errorf("expected 7x3, got %dx%d", m.Width, m.Height)
	}
	if len(m.Values) != 21 {
		t.Errorf("expected 21 cells, got %d", len(m.Values))
	}
}
