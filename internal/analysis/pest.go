package analysis

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
	"github.com/cropscope/cropscope-research-cli/internal/utils"
)

// PestDetection is one candidate pest or disease occurrence. LocationX and
// LocationY are normalized to [0,1) of the scene extent so renderers can
// place markers regardless of resolution.
type PestDetection struct {
	Type           string  `json:"type" csv:"type"`
	Confidence     float64 `json:"confidence" csv:"confidence"`
	Severity       string  `json:"severity" csv:"severity"`
	LocationX      float64 `json:"location_x" csv:"location_x"`
	LocationY      float64 `json:"location_y" csv:"location_y"`
	Recommendation string  `json:"recommendation" csv:"recommendation"`
}

// PestProfile describes one catalog entry: the anomaly signature a trained
// detector would key on and the factors that drive severity grading.
type PestProfile struct {
	SpectralSignature string
	TypicalLocation   string
	SeverityFactors   []string
	Recommendations   []string
}

// PestCatalog is the built-in pest and disease reference set.
func PestCatalog() map[string]PestProfile {
	return map[string]PestProfile{
		"aphids": {
			SpectralSignature: "green_yellow_stress",
			TypicalLocation:   "leaf_undersides",
			SeverityFactors:   []string{"density", "spread_rate"},
			Recommendations: []string{
				"Monitor population levels",
				"Consider beneficial insects release",
				"Apply targeted insecticide if needed",
			},
		},
		"corn_borer": {
			SpectralSignature: "internal_damage",
			TypicalLocation:   "stalk_entry_points",
			SeverityFactors:   []string{"tunnel_length", "plant_stage"},
			Recommendations: []string{
				"Immediate treatment recommended",
				"Apply approved insecticide",
				"Monitor neighboring plants",
			},
		},
		"leaf_rust": {
			SpectralSignature: "orange_red_pustules",
			TypicalLocation:   "leaf_surfaces",
			SeverityFactors:   []string{"pustule_density", "leaf_coverage"},
			Recommendations: []string{
				"Apply fungicide treatment",
				"Remove infected plant material",
				"Improve air circulation",
			},
		},
		"spider_mites": {
			SpectralSignature: "stippling_yellowing",
			TypicalLocation:   "leaf_surfaces",
			SeverityFactors:   []string{"coverage_area", "population_density"},
			Recommendations: []string{
				"Increase humidity levels",
				"Apply miticide treatment",
				"Monitor for natural predators",
			},
		},
	}
}

var severityRank = map[string]int{"High": 3, "Medium": 2, "Low": 1}

// PestDetector samples candidate detections from the catalog. A trained
// anomaly model has not shipped yet, so detections are drawn from the
// injected source; a nil rng produces no detections, which keeps analysis
// runs reproducible.
type PestDetector struct {
	catalog map[string]PestProfile
	rng     *rand.Rand
}

func NewPestDetector(rng *rand.Rand) *PestDetector {
	return &PestDetector{catalog: PestCatalog(), rng: rng}
}

// Detect returns between zero and three detections for the scene, ordered by
// descending severity; equal severities keep their generation order. The cube
// is what a trained anomaly model will score; the placeholder sampler accepts
// it (nil included) without reading it.
func (d *PestDetector) Detect(cube *hyperspectral.Cube) []PestDetection {
	if d.rng == nil {
		return nil
	}

	kinds := utils.SortedKeys(d.catalog)
	count := d.rng.Intn(4)
	detections := make([]PestDetection, 0, count)
	for i := 0; i < count; i++ {
		kind := kinds[d.rng.Intn(len(kinds))]
		detections = append(detections, d.sample(kind))
	}

	sort.SliceStable(detections, func(i, j int) bool {
		return severityRank[detections[i].Severity] > severityRank[detections[j].Severity]
	})
	return detections
}

func (d *PestDetector) sample(kind string) PestDetection {
	profile := d.catalog[kind]

	var severity string
	switch r := d.rng.Float64(); {
	case r < 0.4:
		severity = "Low"
	case r < 0.8:
		severity = "Medium"
	default:
		severity = "High"
	}

	var confidence float64
	switch severity {
	case "Low":
		confidence = uniform(d.rng, 0.6, 0.8)
	case "Medium":
		confidence = uniform(d.rng, 0.7, 0.9)
	default:
		confidence = uniform(d.rng, 0.8, 0.95)
	}

	return PestDetection{
		Type:           displayName(kind),
		Confidence:     confidence,
		Severity:       severity,
		LocationX:      d.rng.Float64(),
		LocationY:      d.rng.Float64(),
		Recommendation: profile.Recommendations[d.rng.Intn(len(profile.Recommendations))],
	}
}

// displayName turns a catalog key like "corn_borer" into "Corn Borer".
func displayName(kind string) string {
	words := strings.Split(kind, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
