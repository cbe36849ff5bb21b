package analysis

import (
	"image/color"
	"testing"

	"fieldscout/pkg/models"
)

// --- SeverityFor tests ---

func TestSeverityFor_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		affected float64
		expected models.Severity
	}{
		{"zero", 0, models.SeverityLow},
		{"just below medium band", 14.9, models.SeverityLow},
		{"exactly 15 stays low", 15.0, models.SeverityLow},
		{"just above medium floor", 15.1, models.SeverityMedium},
		{"mid medium band", 25, models.SeverityMedium},
		{"exactly 35 stays medium", 35.0, models.SeverityMedium},
		{"just above high floor", 35.1, models.SeverityHigh},
		{"everything affected", 100, models.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeverityFor(tt.affected)
			if got != tt.expected {
				t.Errorf("SeverityFor(%v) = %v, want %v", tt.affected, got, tt.expected)
			}
		})
	}
}

// --- DisplayIndex tests ---

func TestDisplayIndex(t *testing.T) {
	tests := []struct {
		name     string
		mean     float64
		expected float64
	}{
		{"pure green mean clamps to 1", 1.0, 1.0},
		{"pure red mean clamps to 0", -1.0, 0.0},
		{"zero mean shifts to 0.5", 0, 0.5},
		{"rounds to 2 decimals", 0.123, 0.62},
		{"negative shift", -0.337, 0.16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayIndex(tt.mean)
			if got != tt.expected {
				t.Errorf("DisplayIndex(%v) = %v, want %v", tt.mean, got, tt.expected)
			}
		})
	}
}

// --- AffectedArea tests ---

func TestAffectedArea_AllStressed(t *testing.T) {
	m, _ := ComputeVARI(uniformImage(4, 4, 255, 0, 0))
	if got := AffectedArea(m); got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
}

func TestAffectedArea_NoneStressed(t *testing.T) {
	m, _ := ComputeVARI(uniformImage(4, 4, 0, 255, 0))
	if got := AffectedArea(m); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestAffectedArea_Mixed(t *testing.T) {
	// 3 of 4 cells stressed.
	m := &IndexMap{Width: 2, Height: 2, Values: []float64{-0.5, 0.04, 0.05, 0.9}}
	if got := AffectedArea(m); got != 50 {
		t.Errorf("expected 50 (two cells strictly below 0.05), got %v", got)
	}
}

// --- Confidence tests ---

func TestConfidence_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		sharpness float64
		expected  float64
	}{
		{"zero sharpness", 0, 85.0},
		{"moderate sharpness", 2500, 90.0},
		{"huge sharpness clamps at ceiling", 1e12, 99.9},
		{"negative stays at floor", -1e12, 80.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.sharpness)
			if got != tt.expected {
				t.Errorf("Confidence(%v) = %v, want %v", tt.sharpness, got, tt.expected)
			}
			if got < 80.0 || got > 99.9 {
				t.Errorf("Confidence(%v) = %v out of [80.0, 99.9]", tt.sharpness, got)
			}
		})
	}
}

// --- Sharpness tests ---

func TestSharpness_UniformImageIsZero(t *testing.T) {
	if got := Sharpness(uniformImage(10, 10, 80, 160, 40)); got != 0 {
		t.Errorf("uniform image should have zero sharpness, got %v", got)
	}
}

func TestSharpness_EdgesIncreaseSharpness(t *testing.T) {
	img := uniformImage(10, 10, 0, 0, 0)
	// Hard vertical edge down the middle.
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	if got := Sharpness(img); got <= 0 {
		t.Errorf("image with hard edge should have positive sharpness, got %v", got)
	}
}

func TestSharpness_TinyImageIsZero(t *testing.T) {
	if got := Sharpness(uniformImage(2, 2, 10, 20, 30)); got != 0 {
		t.Errorf("sub-3x3 image should report zero sharpness, got %v", got)
	}
}

// --- Classify end-to-end scenarios ---

func TestClassify_PureGreenScenario(t *testing.T) {
	img := uniformImage(8, 8, 0, 255, 0)
	m, mean := ComputeVARI(img)
	c := Classify(m, mean, img)

	if c.DisplayIndex != 1.0 {
		t.Errorf("displayIndex = %v, want 1.0", c.DisplayIndex)
	}
	if c.AffectedArea != 0 {
		t.Errorf("affectedArea = %v, want 0", c.AffectedArea)
	}
	if c.Severity != models.SeverityLow {
		t.Errorf("severity = %v, want Low", c.Severity)
	}
	if c.Confidence != 85.0 {
		t.Errorf("confidence = %v, want 85.0 for uniform image", c.Confidence)
	}
}

func TestClassify_PureRedScenario(t *testing.T) {
	img := uniformImage(8, 8, 255, 0, 0)
	m, mean := ComputeVARI(img)
	c := Classify(m, mean, img)

	if c.DisplayIndex != 0.0 {
		t.Errorf("displayIndex = %v, want 0.0", c.DisplayIndex)
	}
	if c.AffectedArea != 100 {
		t.Errorf("affectedArea = %v, want 100", c.AffectedArea)
	}
	if c.Severity != models.SeverityHigh {
		t.Errorf("severity = %v, want High", c.Severity)
	}
}
