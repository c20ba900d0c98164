package features

import (
	"github.com/montanaflynn/stats"

	"github.com/cropscope/cropscope-research-cli/internal/spectral"
)

// IndexStats summarizes the per-pixel distribution of one spectral index.
type IndexStats struct {
	Mean float64 `json:"mean" csv:"mean"`
	Std  float64 `json:"std" csv:"std"`
	P25  float64 `json:"p25" csv:"p25"`
	P75  float64 `json:"p75" csv:"p75"`
	Min  float64 `json:"min" csv:"min"`
	Max  float64 `json:"max" csv:"max"`
}

// Vector is the fixed-shape feature set handed to the analysis models. Every
// feature is a named field so the models never depend on positional layout.
type Vector struct {
	Indices map[string]IndexStats `json:"indices"`

	SpectrumMean   float64 `json:"spectrum_mean"`
	SpectrumStd    float64 `json:"spectrum_std"`
	SpectrumMin    float64 `json:"spectrum_min"`
	SpectrumMax    float64 `json:"spectrum_max"`
	RedEdgeSlope   float64 `json:"red_edge_slope"`
	AreaUnderCurve float64 `json:"area_under_curve"`
	BluePeak       float64 `json:"blue_peak"`
	GreenPeak      float64 `json:"green_peak"`
	RedAbsorption  float64 `json:"red_absorption"`
	NIRPeak        float64 `json:"nir_peak"`
}

// Empty reports whether no index could be computed for the scene. The curve
// features may still carry values; models treat an empty vector as degraded
// input and fall back to their defaults.
func (v Vector) Empty() bool {
	return len(v.Indices) == 0
}

// Index returns the stats for a named index and whether it was computed.
func (v Vector) Index(name string) (IndexStats, bool) {
	s, ok := v.Indices[name]
	return s, ok
}

// Extract flattens per-pixel index maps into distribution statistics and
// merges in the scene curve descriptors.
func Extract(indices map[string][][]float64, curve spectral.CurveSummary) Vector {
	vector := Vector{
		Indices:        make(map[string]IndexStats, len(indices)),
		SpectrumMean:   curve.SpectrumMean,
		SpectrumStd:    curve.SpectrumStd,
		SpectrumMin:    curve.SpectrumMin,
		SpectrumMax:    curve.SpectrumMax,
		RedEdgeSlope:   curve.RedEdgeSlope,
		AreaUnderCurve: curve.AreaUnderCurve,
		BluePeak:       curve.BluePeak,
		GreenPeak:      curve.GreenPeak,
		RedAbsorption:  curve.RedAbsorption,
		NIRPeak:        curve.NIRPeak,
	}

	for name, grid := range indices {
		flat := flatten(grid)
		if len(flat) == 0 {
			continue
		}
		vector.Indices[name] = describe(flat)
	}

	return vector
}

func describe(values stats.Float64Data) IndexStats {
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)
	p25, _ := stats.Percentile(values, 25)
	p75, _ := stats.Percentile(values, 75)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return IndexStats{Mean: mean, Std: std, P25: p25, P75: p75, Min: min, Max: max}
}

func flatten(grid [][]float64) []float64 {
	total := 0
	for _, row := range grid {
		total += len(row)
	}
	flat := make([]float64, 0, total)
	for _, row := range grid {
		flat = append(flat, row...)
	}
	return flat
}
