package analysis

import (
	"testing"

	"github.com/cropscope/cropscope-research-cli/internal/features"
)

func TestSoilAnalyzeBounds(t *testing.T) {
	analyzer := NewSoilAnalyzer(nil)
	vectors := []features.Vector{
		{SpectrumMean: 0.9, SpectrumMax: 1, NIRPeak: 1, GreenPeak: 1, SpectrumStd: 1},
		{SpectrumMean: 0.01, SpectrumMax: 0.02, NIRPeak: 0.01, RedAbsorption: 1},
		{SpectrumMean: 0.3, SpectrumMax: 0.8, NIRPeak: 0.6, GreenPeak: 0.1, RedAbsorption: 0.05, SpectrumStd: 0.1},
	}

	for _, vector := range vectors {
		result := analyzer.Analyze(vector)

		if result.PHLevel < 4.0 || result.PHLevel > 8.5 {
			t.Errorf("pH %g outside [4.0, 8.5]", result.PHLevel)
		}
		if result.OrganicMatter < 1.0 || result.OrganicMatter > 8.0 {
			t.Errorf("organic matter %g outside [1, 8]", result.OrganicMatter)
		}
		for name, v := range map[string]float64{
			"moisture":   result.MoistureContent,
			"nitrogen":   result.NitrogenLevel,
			"phosphorus": result.PhosphorusLevel,
			"potassium":  result.PotassiumLevel,
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s %g outside [0, 100]", name, v)
			}
		}
		if len(result.Recommendations) == 0 {
			t.Error("expected at least one recommendation")
		}
	}
}

func TestSoilAnalyzeDeterministicWithoutNoise(t *testing.T) {
	analyzer := NewSoilAnalyzer(nil)
	vector := features.Vector{SpectrumMean: 0.3, SpectrumMax: 0.8, NIRPeak: 0.6}

	first := analyzer.Analyze(vector)
	second := analyzer.Analyze(vector)

	if first.PHLevel != second.PHLevel || first.MoistureContent != second.MoistureContent {
		t.Error("analysis without noise source is not deterministic")
	}
}

func TestSoilDegradedDefaults(t *testing.T) {
	analyzer := NewSoilAnalyzer(nil)
	result := analyzer.Analyze(features.Vector{})

	if !result.Degraded {
		t.Fatal("empty spectrum should yield a degraded result")
	}
	if result.PHLevel != 6.8 || result.OrganicMatter != 4.2 || result.MoistureContent != 67.0 {
		t.Errorf("unexpected defaults: pH=%g om=%g moisture=%g",
			result.PHLevel, result.OrganicMatter, result.MoistureContent)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0] != "Monitor soil conditions regularly" {
		t.Errorf("unexpected default recommendations: %v", result.Recommendations)
	}
}

func TestSoilRecommendationThresholds(t *testing.T) {
	cases := []struct {
		name                      string
		ph, om, moisture, n, p, k float64
		want                      string
	}{
		{"acidic", 5.5, 4, 50, 60, 60, 60, "Consider lime application to raise pH"},
		{"alkaline", 8.0, 4, 50, 60, 60, 60, "Consider sulfur application to lower pH"},
		{"low organic matter", 6.5, 2.0, 50, 60, 60, 60, "Increase organic matter with compost or cover crops"},
		{"dry", 6.5, 4, 20, 60, 60, 60, "Implement irrigation to improve moisture levels"},
		{"waterlogged", 6.5, 4, 90, 60, 60, 60, "Improve drainage to prevent waterlogging"},
		{"low nitrogen", 6.5, 4, 50, 40, 60, 60, "Apply nitrogen fertilizer"},
		{"low phosphorus", 6.5, 4, 50, 60, 30, 60, "Apply phosphorus fertilizer"},
		{"low potassium", 6.5, 4, 50, 60, 60, 40, "Apply potassium fertilizer"},
		{"optimal", 6.5, 4, 50, 60, 60, 60, "Soil conditions are within optimal ranges"},
	}

	for _, c := range cases {
		recommendations := soilRecommendations(c.ph, c.om, c.moisture, c.n, c.p, c.k)
		found := false
		for _, r := range recommendations {
			if r == c.want {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: missing %q in %v", c.name, c.want, recommendations)
		}
		if c.name == "optimal" && len(recommendations) != 1 {
			t.Errorf("optimal soil should get only the catch-all, got %v", recommendations)
		}
	}
}
