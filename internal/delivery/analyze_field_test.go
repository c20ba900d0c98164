package delivery

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
)

func healthyScene(t *testing.T) *hyperspectral.Image {
	t.Helper()
	wavelengths := []float64{450, 550, 670, 800}
	cube, err := hyperspectral.NewCube(4, 4, len(wavelengths))
	if err != nil {
		t.Fatal(err)
	}
	values := []float64{0.04, 0.08, 0.04, 0.7}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			for band, v := range values {
				cube.Set(row, col, band, v)
			}
		}
	}
	return &hyperspectral.Image{
		Cube:        cube,
		Wavelengths: wavelengths,
		Metadata:    hyperspectral.Metadata{"format": "test"},
	}
}

func TestAnalyzeImageHealthyScene(t *testing.T) {
	pipeline := NewPipeline(nil)
	report, indices := pipeline.AnalyzeImage(healthyScene(t))

	ndvi, ok := report.Features.Index("ndvi")
	if !ok {
		t.Fatal("ndvi missing from features")
	}
	if math.Abs(ndvi.Mean-0.89) > 0.01 {
		t.Errorf("ndvi mean = %g, want about 0.89", ndvi.Mean)
	}

	if report.Health.Status != "excellent" {
		t.Errorf("status = %q, want excellent", report.Health.Status)
	}
	if report.Health.ChlorophyllContent <= 80 {
		t.Errorf("chlorophyll = %g, want > 80", report.Health.ChlorophyllContent)
	}
	if report.Health.Degraded || report.Soil.Degraded {
		t.Error("healthy scene should not be degraded")
	}
	if len(report.Pests) != 0 {
		t.Errorf("deterministic pipeline should report no pests, got %d", len(report.Pests))
	}

	if _, ok := indices["ndvi"]; !ok {
		t.Error("index maps missing ndvi grid")
	}
	if report.Rows != 4 || report.Cols != 4 || report.Bands != 4 {
		t.Errorf("report shape %dx%dx%d, want 4x4x4", report.Rows, report.Cols, report.Bands)
	}
}

func TestAnalyzeImageDegradedScene(t *testing.T) {
	// Two bands nowhere near any index requirement.
	cube, err := hyperspectral.NewCube(2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	img := &hyperspectral.Image{
		Cube:        cube,
		Wavelengths: []float64{900, 1000},
		Metadata:    hyperspectral.Metadata{},
	}

	pipeline := NewPipeline(nil)
	report, indices := pipeline.AnalyzeImage(img)

	if len(indices) != 0 {
		t.Errorf("expected no computable indices, got %d", len(indices))
	}
	if !report.Health.Degraded {
		t.Error("health result should be degraded without indices")
	}
	if report.Health.OverallScore != 78.0 {
		t.Errorf("degraded overall = %g, want the 78.0 default", report.Health.OverallScore)
	}
}

func TestAnalyzeFieldEndToEnd(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	img := healthyScene(t)
	rawPath, _, err := hyperspectral.WriteENVI(img, filepath.Join(t.TempDir(), "field"))
	if err != nil {
		t.Fatal(err)
	}

	pipeline := NewPipeline(nil)
	report, err := pipeline.AnalyzeField(rawPath)
	if err != nil {
		t.Fatalf("AnalyzeField failed: %v", err)
	}

	if report.SourcePath != rawPath {
		t.Errorf("source path = %q, want %q", report.SourcePath, rawPath)
	}
	if report.Health.Status != "excellent" {
		t.Errorf("status = %q, want excellent", report.Health.Status)
	}

	// Second run must come from the cache: identical generation time.
	cached, err := pipeline.AnalyzeField(rawPath)
	if err != nil {
		t.Fatalf("cached AnalyzeField failed: %v", err)
	}
	if !cached.GeneratedAt.Equal(report.GeneratedAt) {
		t.Error("expected the cached report on the second run")
	}
}

func TestAnalyzeFieldSurvivesCacheWriteFailure(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)
	// A regular file where the cache directory belongs makes every write fail.
	if err := os.WriteFile(filepath.Join(root, "data"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	rawPath, _, err := hyperspectral.WriteENVI(healthyScene(t), filepath.Join(t.TempDir(), "field"))
	if err != nil {
		t.Fatal(err)
	}

	pipeline := NewPipeline(nil)
	report, err := pipeline.AnalyzeField(rawPath)
	if err != nil {
		t.Fatalf("analysis should survive a cache write failure: %v", err)
	}
	if report.Health.Status != "excellent" {
		t.Errorf("status = %q, want excellent", report.Health.Status)
	}
}

func TestAnalyzeFieldMissingFile(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	pipeline := NewPipeline(nil)
	if _, err := pipeline.AnalyzeField(filepath.Join(t.TempDir(), "absent.raw")); err == nil {
		t.Fatal("expected an error for a missing scene file")
	}
}

func TestAnalyzeDirectory(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	sceneDir := t.TempDir()
	img := hyperspectral.Simulate(4, 4, rand.New(rand.NewSource(3)))
	for _, name := range []string{"a", "b", "c"} {
		if _, _, err := hyperspectral.WriteENVI(img, filepath.Join(sceneDir, name)); err != nil {
			t.Fatal(err)
		}
	}

	pipeline := NewPipeline(nil)
	reports, err := pipeline.AnalyzeDirectory(sceneDir)
	if err != nil {
		t.Fatalf("AnalyzeDirectory failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i-1].SourcePath >= reports[i].SourcePath {
			t.Error("reports not sorted by source path")
		}
	}
}

func TestAnalyzeDirectoryEmpty(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	pipeline := NewPipeline(nil)
	if _, err := pipeline.AnalyzeDirectory(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without scenes")
	}
}
