package analysis

import (
	"math/rand"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/features"
)

// SoilResult holds the estimated soil properties. pH is in pH units,
// organic matter is a percentage, and the remaining values live on a 0-100
// scale.
type SoilResult struct {
	PHLevel         float64   `json:"ph_level" csv:"ph_level"`
	OrganicMatter   float64   `json:"organic_matter" csv:"organic_matter"`
	MoistureContent float64   `json:"moisture_content" csv:"moisture_content"`
	NitrogenLevel   float64   `json:"nitrogen_level" csv:"nitrogen_level"`
	PhosphorusLevel float64   `json:"phosphorus_level" csv:"phosphorus_level"`
	PotassiumLevel  float64   `json:"potassium_level" csv:"potassium_level"`
	Recommendations []string  `json:"recommendations" csv:"-"`
	Degraded        bool      `json:"degraded" csv:"degraded"`
	DegradedReason  string    `json:"degraded_reason,omitempty" csv:"-"`
	AnalyzedAt      time.Time `json:"analysis_timestamp" csv:"analysis_timestamp"`
}

// SoilAnalyzer estimates soil properties from the scene curve features:
// overall brightness, the NIR plateau and the green/red regions. A non-nil
// rng adds measurement noise, which tests leave out.
type SoilAnalyzer struct {
	rng *rand.Rand
}

func NewSoilAnalyzer(rng *rand.Rand) *SoilAnalyzer {
	return &SoilAnalyzer{rng: rng}
}

// Analyze estimates soil properties. A scene with no usable spectrum yields
// the documented defaults with the Degraded marker set.
func (a *SoilAnalyzer) Analyze(vector features.Vector) SoilResult {
	if vector.SpectrumMax == 0 && vector.SpectrumMean == 0 {
		return SoilResult{
			PHLevel:         6.8,
			OrganicMatter:   4.2,
			MoistureContent: 67.0,
			NitrogenLevel:   75.0,
			PhosphorusLevel: 68.0,
			PotassiumLevel:  72.0,
			Recommendations: []string{"Monitor soil conditions regularly"},
			Degraded:        true,
			DegradedReason:  "scene spectrum is empty",
			AnalyzedAt:      time.Now(),
		}
	}

	// Brighter scenes lean alkaline and low in organic matter; a strong NIR
	// plateau indicates moisture-holding vegetation cover.
	ph := 6.5 + (vector.SpectrumMean-0.35)*3
	organicMatter := 3.5 + (0.4-vector.SpectrumMean)*5
	moisture := 45 + (vector.NIRPeak-0.5)*40
	nitrogen := 70 + (vector.GreenPeak-0.15)*100
	phosphorus := 65 + (0.1-vector.RedAbsorption)*100
	potassium := 68 + (vector.SpectrumStd-0.1)*50

	if a.rng != nil {
		ph += a.rng.NormFloat64() * 0.5
		organicMatter += a.rng.NormFloat64() * 1.0
		moisture += a.rng.NormFloat64() * 15
		nitrogen += a.rng.NormFloat64() * 15
		phosphorus += a.rng.NormFloat64() * 12
		potassium += a.rng.NormFloat64() * 10
	}

	ph = clamp(ph, 4.0, 8.5)
	organicMatter = clamp(organicMatter, 1.0, 8.0)
	moisture = clamp(moisture, 0, 100)
	nitrogen = clamp(nitrogen, 0, 100)
	phosphorus = clamp(phosphorus, 0, 100)
	potassium = clamp(potassium, 0, 100)

	return SoilResult{
		PHLevel:         ph,
		OrganicMatter:   organicMatter,
		MoistureContent: moisture,
		NitrogenLevel:   nitrogen,
		PhosphorusLevel: phosphorus,
		PotassiumLevel:  potassium,
		Recommendations: soilRecommendations(ph, organicMatter, moisture, nitrogen, phosphorus, potassium),
		AnalyzedAt:      time.Now(),
	}
}

func soilRecommendations(ph, organicMatter, moisture, nitrogen, phosphorus, potassium float64) []string {
	var recommendations []string

	if ph < 6.0 {
		recommendations = append(recommendations, "Consider lime application to raise pH")
	} else if ph > 7.5 {
		recommendations = append(recommendations, "Consider sulfur application to lower pH")
	}

	if organicMatter < 3.0 {
		recommendations = append(recommendations, "Increase organic matter with compost or cover crops")
	}

	if moisture < 30 {
		recommendations = append(recommendations, "Implement irrigation to improve moisture levels")
	} else if moisture > 80 {
		recommendations = append(recommendations, "Improve drainage to prevent waterlogging")
	}

	if nitrogen < 50 {
		recommendations = append(recommendations, "Apply nitrogen fertilizer")
	}
	if phosphorus < 40 {
		recommendations = append(recommendations, "Apply phosphorus fertilizer")
	}
	if potassium < 45 {
		recommendations = append(recommendations, "Apply potassium fertilizer")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Soil conditions are within optimal ranges")
	}
	return recommendations
}
