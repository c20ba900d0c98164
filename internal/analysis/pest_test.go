package analysis

import (
	"math/rand"
	"testing"

	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
)

func pestScene(t *testing.T) *hyperspectral.Cube {
	t.Helper()
	cube, err := hyperspectral.NewCube(4, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	return cube
}

func TestPestDetectNilSourceIsSilent(t *testing.T) {
	detector := NewPestDetector(nil)
	if detections := detector.Detect(pestScene(t)); len(detections) != 0 {
		t.Errorf("nil source should produce no detections, got %d", len(detections))
	}
}

func TestPestDetectInvariants(t *testing.T) {
	validTypes := map[string]bool{
		"Aphids": true, "Corn Borer": true, "Leaf Rust": true, "Spider Mites": true,
	}
	confidenceRanges := map[string][2]float64{
		"Low":    {0.6, 0.8},
		"Medium": {0.7, 0.9},
		"High":   {0.8, 0.95},
	}

	detector := NewPestDetector(rand.New(rand.NewSource(42)))
	cube := pestScene(t)
	for run := 0; run < 200; run++ {
		detections := detector.Detect(cube)
		if len(detections) > 3 {
			t.Fatalf("got %d detections, want at most 3", len(detections))
		}

		previousRank := 4
		for _, detection := range detections {
			if !validTypes[detection.Type] {
				t.Fatalf("unknown pest type %q", detection.Type)
			}

			bounds, ok := confidenceRanges[detection.Severity]
			if !ok {
				t.Fatalf("unknown severity %q", detection.Severity)
			}
			if detection.Confidence < bounds[0] || detection.Confidence >= bounds[1] {
				t.Errorf("%s confidence %g outside [%g, %g)",
					detection.Severity, detection.Confidence, bounds[0], bounds[1])
			}

			if detection.LocationX < 0 || detection.LocationX >= 1 ||
				detection.LocationY < 0 || detection.LocationY >= 1 {
				t.Errorf("location (%g, %g) outside [0,1)", detection.LocationX, detection.LocationY)
			}
			if detection.Recommendation == "" {
				t.Error("detection missing recommendation")
			}

			rank := severityRank[detection.Severity]
			if rank > previousRank {
				t.Error("detections not sorted by descending severity")
			}
			previousRank = rank
		}
	}
}

func TestPestDetectNilCube(t *testing.T) {
	detector := NewPestDetector(rand.New(rand.NewSource(1)))
	for run := 0; run < 20; run++ {
		for _, detection := range detector.Detect(nil) {
			if detection.Type == "" {
				t.Fatal("detection without a type")
			}
		}
	}
}

func TestPestCatalogComplete(t *testing.T) {
	catalog := PestCatalog()
	for _, kind := range []string{"aphids", "corn_borer", "leaf_rust", "spider_mites"} {
		profile, ok := catalog[kind]
		if !ok {
			t.Fatalf("catalog missing %q", kind)
		}
		if profile.SpectralSignature == "" || profile.TypicalLocation == "" {
			t.Errorf("%s profile incomplete", kind)
		}
		if len(profile.SeverityFactors) == 0 || len(profile.Recommendations) == 0 {
			t.Errorf("%s missing severity factors or recommendations", kind)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"aphids":       "Aphids",
		"corn_borer":   "Corn Borer",
		"spider_mites": "Spider Mites",
	}
	for in, want := range cases {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}
