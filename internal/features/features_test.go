package features

import (
	"math"
	"testing"

	"github.com/cropscope/cropscope-research-cli/internal/spectral"
)

func TestExtractIndexStats(t *testing.T) {
	indices := map[string][][]float64{
		"ndvi": {
			{0.2, 0.4},
			{0.6, 0.8},
		},
	}
	curve := spectral.CurveSummary{
		SpectrumMean: 0.3,
		NIRPeak:      0.7,
		RedEdgeSlope: 0.01,
	}

	vector := Extract(indices, curve)

	stats, ok := vector.Index("ndvi")
	if !ok {
		t.Fatal("ndvi stats missing")
	}
	if math.Abs(stats.Mean-0.5) > 1e-9 {
		t.Errorf("mean = %g, want 0.5", stats.Mean)
	}
	if stats.Min != 0.2 || stats.Max != 0.8 {
		t.Errorf("min/max = (%g, %g), want (0.2, 0.8)", stats.Min, stats.Max)
	}
	if stats.P25 > stats.P75 {
		t.Errorf("p25 (%g) above p75 (%g)", stats.P25, stats.P75)
	}
	if stats.Std <= 0 {
		t.Errorf("std = %g, want > 0", stats.Std)
	}

	if vector.SpectrumMean != 0.3 || vector.NIRPeak != 0.7 || vector.RedEdgeSlope != 0.01 {
		t.Error("curve features not carried into the vector")
	}
	if vector.Empty() {
		t.Error("vector with indices reported empty")
	}
}

func TestExtractEmptyInput(t *testing.T) {
	vector := Extract(nil, spectral.CurveSummary{})

	if !vector.Empty() {
		t.Error("vector without indices should report empty")
	}
	if _, ok := vector.Index("ndvi"); ok {
		t.Error("unexpected ndvi stats")
	}
}

func TestExtractSkipsEmptyGrids(t *testing.T) {
	indices := map[string][][]float64{
		"ndvi": {},
	}

	vector := Extract(indices, spectral.CurveSummary{})

	if !vector.Empty() {
		t.Error("empty grid should not produce stats")
	}
}
