package analysis

import (
	"math"
	"testing"

	"github.com/cropscope/cropscope-research-cli/internal/features"
)

func vectorWithNDVI(mean, std float64) features.Vector {
	return features.Vector{
		Indices: map[string]features.IndexStats{
			"ndvi": {Mean: mean, Std: std, Min: mean, Max: mean},
		},
	}
}

func TestHealthAnalyzeHealthyField(t *testing.T) {
	analyzer := NewHealthAnalyzer(nil)
	result := analyzer.Analyze(vectorWithNDVI(0.89, 0))

	if result.Degraded {
		t.Fatal("healthy field reported degraded")
	}
	if result.ChlorophyllContent <= 80 {
		t.Errorf("chlorophyll = %g, want > 80", result.ChlorophyllContent)
	}
	if result.Status != "excellent" {
		t.Errorf("status = %q, want excellent", result.Status)
	}
	if result.OverallScore < 90 || result.OverallScore > 100 {
		t.Errorf("overall = %g, want within [90,100]", result.OverallScore)
	}
	if len(result.Recommendations) == 0 {
		t.Error("expected at least one recommendation")
	}
}

func TestHealthAnalyzeDeterministicWithoutNoise(t *testing.T) {
	analyzer := NewHealthAnalyzer(nil)
	vector := vectorWithNDVI(0.5, 0.1)

	first := analyzer.Analyze(vector)
	second := analyzer.Analyze(vector)

	if first.OverallScore != second.OverallScore || first.ChlorophyllContent != second.ChlorophyllContent {
		t.Error("analysis without noise source is not deterministic")
	}
}

func TestHealthOverallScoreWeights(t *testing.T) {
	analyzer := NewHealthAnalyzer(nil)
	result := analyzer.Analyze(vectorWithNDVI(0.5, 0.1))

	want := 0.4*result.ChlorophyllContent +
		0.25*(100-result.WaterStress) +
		0.2*(100-result.NutrientDeficiency) +
		0.15*(100-result.DiseaseRisk)
	if math.Abs(result.OverallScore-want) > 1e-9 {
		t.Errorf("overall = %g, want %g", result.OverallScore, want)
	}
}

func TestHealthStatusThresholds(t *testing.T) {
	cases := []struct {
		score  float64
		status string
	}{
		{95, "excellent"},
		{90, "excellent"},
		{89.9, "healthy"},
		{70, "healthy"},
		{69.9, "attention_needed"},
		{50, "attention_needed"},
		{49.9, "poor"},
		{0, "poor"},
	}
	for _, c := range cases {
		if got := statusFor(c.score); got != c.status {
			t.Errorf("statusFor(%g) = %q, want %q", c.score, got, c.status)
		}
	}
}

func TestHealthDegradedDefaults(t *testing.T) {
	analyzer := NewHealthAnalyzer(nil)
	result := analyzer.Analyze(features.Vector{})

	if !result.Degraded {
		t.Fatal("empty vector should yield a degraded result")
	}
	if result.DegradedReason == "" {
		t.Error("degraded result missing a reason")
	}
	if result.OverallScore != 78.0 || result.Status != "healthy" {
		t.Errorf("unexpected defaults: score=%g status=%q", result.OverallScore, result.Status)
	}
	if len(result.Recommendations) != 2 {
		t.Errorf("expected the two default recommendations, got %d", len(result.Recommendations))
	}
}

func TestHealthRecommendationsStressedField(t *testing.T) {
	analyzer := NewHealthAnalyzer(nil)
	// Low greenness with high variability trips every component rule.
	result := analyzer.Analyze(vectorWithNDVI(0.05, 0.5))

	if result.WaterStress <= 40 {
		t.Fatalf("test vector should produce water stress > 40, got %g", result.WaterStress)
	}

	found := map[string]bool{}
	for _, r := range result.Recommendations {
		found[r] = true
	}
	for _, want := range []string{
		"Consider nitrogen fertilizer application to improve chlorophyll content",
		"Implement irrigation or water management strategies",
		"Conduct soil test and apply appropriate fertilizers",
		"Monitor for disease symptoms and consider preventive treatments",
	} {
		if !found[want] {
			t.Errorf("missing recommendation %q", want)
		}
	}
}

func TestHealthFallbackIndexChain(t *testing.T) {
	analyzer := NewHealthAnalyzer(nil)
	vector := features.Vector{
		Indices: map[string]features.IndexStats{
			"savi": {Mean: 0.6, Std: 0.05},
		},
	}

	result := analyzer.Analyze(vector)
	if result.Degraded {
		t.Error("savi-only vector should not be degraded")
	}
	want := clamp((0.6+0.3)*100, 0, 100)
	if math.Abs(result.ChlorophyllContent-want) > 1e-9 {
		t.Errorf("chlorophyll = %g, want %g from savi fallback", result.ChlorophyllContent, want)
	}
}
