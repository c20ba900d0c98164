package analysis

import (
	"math/rand"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/features"
)

// Component weights of the overall health score.
const (
	weightChlorophyll = 0.4
	weightWaterStress = 0.25
	weightNutrient    = 0.2
	weightDisease     = 0.15
)

// HealthResult holds the per-component crop health scores. All component
// values live on a 0-100 scale; stress, deficiency and risk read as
// "higher is worse" and are inverted inside the overall score.
type HealthResult struct {
	ChlorophyllContent float64   `json:"chlorophyll_content" csv:"chlorophyll_content"`
	WaterStress        float64   `json:"water_stress" csv:"water_stress"`
	NutrientDeficiency float64   `json:"nutrient_deficiency" csv:"nutrient_deficiency"`
	DiseaseRisk        float64   `json:"disease_risk" csv:"disease_risk"`
	OverallScore       float64   `json:"overall_score" csv:"overall_score"`
	Status             string    `json:"health_status" csv:"health_status"`
	Recommendations    []string  `json:"recommendations" csv:"-"`
	Degraded           bool      `json:"degraded" csv:"degraded"`
	DegradedReason     string    `json:"degraded_reason,omitempty" csv:"-"`
	AnalyzedAt         time.Time `json:"analysis_timestamp" csv:"analysis_timestamp"`
}

// HealthAnalyzer scores crop health from extracted scene features. The model
// itself is deterministic; a non-nil rng layers per-component measurement
// noise on top, which tests leave out.
type HealthAnalyzer struct {
	rng *rand.Rand
}

func NewHealthAnalyzer(rng *rand.Rand) *HealthAnalyzer {
	return &HealthAnalyzer{rng: rng}
}

// Analyze scores the scene. A vector with no computed indices yields the
// documented moderate defaults with the Degraded marker set, never an error.
func (a *HealthAnalyzer) Analyze(vector features.Vector) HealthResult {
	if vector.Empty() {
		return HealthResult{
			ChlorophyllContent: 75.0,
			WaterStress:        25.0,
			NutrientDeficiency: 15.0,
			DiseaseRisk:        12.0,
			OverallScore:       78.0,
			Status:             statusFor(78.0),
			Recommendations:    []string{"Monitor field conditions", "Continue current management practices"},
			Degraded:           true,
			DegradedReason:     "no spectral index could be computed for the scene",
			AnalyzedAt:         time.Now(),
		}
	}

	greenness := greennessStats(vector)

	chlorophyll := clamp((greenness.Mean+0.3)*100, 0, 100)
	waterStress := clamp(greenness.Std*200, 0, 100)
	nutrientDeficiency := clamp((1-greenness.Mean)*50, 0, 100)
	diseaseRisk := clamp(greenness.Std*100, 0, 50)

	if a.rng != nil {
		chlorophyll = clamp(chlorophyll+a.rng.NormFloat64()*5, 0, 100)
		waterStress = clamp(waterStress+uniform(a.rng, 10, 30), 0, 100)
		nutrientDeficiency = clamp(nutrientDeficiency+uniform(a.rng, 5, 15), 0, 100)
		diseaseRisk = clamp(diseaseRisk+uniform(a.rng, 5, 15), 0, 100)
	}

	overall := clamp(
		weightChlorophyll*chlorophyll+
			weightWaterStress*(100-waterStress)+
			weightNutrient*(100-nutrientDeficiency)+
			weightDisease*(100-diseaseRisk),
		0, 100)

	return HealthResult{
		ChlorophyllContent: chlorophyll,
		WaterStress:        waterStress,
		NutrientDeficiency: nutrientDeficiency,
		DiseaseRisk:        diseaseRisk,
		OverallScore:       overall,
		Status:             statusFor(overall),
		Recommendations:    healthRecommendations(chlorophyll, waterStress, nutrientDeficiency, diseaseRisk, overall),
		AnalyzedAt:         time.Now(),
	}
}

// greennessStats picks the primary vegetation index for the scene. NDVI is
// preferred; SAVI and EVI stand in when the red/NIR pair was out of tolerance
// for NDVI but a sibling index still resolved.
func greennessStats(vector features.Vector) features.IndexStats {
	for _, name := range []string{"ndvi", "savi", "evi"} {
		if s, ok := vector.Index(name); ok {
			return s
		}
	}
	if names := sortedIndexNames(vector); len(names) > 0 {
		return vector.Indices[names[0]]
	}
	return features.IndexStats{}
}

func statusFor(overall float64) string {
	switch {
	case overall >= 90:
		return "excellent"
	case overall >= 70:
		return "healthy"
	case overall >= 50:
		return "attention_needed"
	default:
		return "poor"
	}
}

func healthRecommendations(chlorophyll, waterStress, nutrientDeficiency, diseaseRisk, overall float64) []string {
	var recommendations []string

	if chlorophyll < 60 {
		recommendations = append(recommendations, "Consider nitrogen fertilizer application to improve chlorophyll content")
	}
	if waterStress > 40 {
		recommendations = append(recommendations, "Implement irrigation or water management strategies")
	}
	if nutrientDeficiency > 30 {
		recommendations = append(recommendations, "Conduct soil test and apply appropriate fertilizers")
	}
	if diseaseRisk > 25 {
		recommendations = append(recommendations, "Monitor for disease symptoms and consider preventive treatments")
	}

	switch {
	case overall < 50:
		recommendations = append(recommendations, "Immediate attention required - conduct field inspection")
	case overall < 70:
		recommendations = append(recommendations, "Monitor closely and consider management interventions")
	default:
		recommendations = append(recommendations, "Continue current management practices")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Field appears healthy - maintain current practices")
	}
	return recommendations
}
