package delivery

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/analysis"
	"github.com/cropscope/cropscope-research-cli/internal/cache"
	"github.com/cropscope/cropscope-research-cli/internal/features"
	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
	"github.com/cropscope/cropscope-research-cli/internal/properties"
	"github.com/cropscope/cropscope-research-cli/internal/spectral"
)

// FieldReport is the full analysis output for one scene: the extracted
// feature vector and the three model results, plus enough provenance to
// trace the report back to its source file.
type FieldReport struct {
	SourcePath  string                   `json:"source_path"`
	Rows        int                      `json:"rows"`
	Cols        int                      `json:"cols"`
	Bands       int                      `json:"bands"`
	Metadata    hyperspectral.Metadata   `json:"metadata"`
	Features    features.Vector          `json:"features"`
	Health      analysis.HealthResult    `json:"health"`
	Soil        analysis.SoilResult      `json:"soil"`
	Pests       []analysis.PestDetection `json:"pests"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// Pipeline wires the loader, preprocessor, index engine and the three
// analysis models together. A non-nil rng propagates measurement noise into
// the models; nil keeps every stage deterministic.
type Pipeline struct {
	engine *spectral.Engine
	health *analysis.HealthAnalyzer
	soil   *analysis.SoilAnalyzer
	pests  *analysis.PestDetector
	cache  *cache.FileCache[FieldReport]
}

func NewPipeline(rng *rand.Rand) *Pipeline {
	return &Pipeline{
		engine: spectral.NewEngine(spectral.DefaultDefinitions(), properties.BandTolerance()),
		health: analysis.NewHealthAnalyzer(rng),
		soil:   analysis.NewSoilAnalyzer(rng),
		pests:  analysis.NewPestDetector(rng),
		cache:  cache.NewFileCache[FieldReport]("reports"),
	}
}

// AnalyzeImage runs the full pipeline on an in-memory scene. It also returns
// the per-pixel index maps so renderers do not have to recompute them.
func (p *Pipeline) AnalyzeImage(img *hyperspectral.Image) (FieldReport, map[string][][]float64) {
	corrected := hyperspectral.Preprocess(img)

	indices := p.engine.Calculate(corrected.Cube, corrected.Wavelengths)
	curve := spectral.SummarizeCurve(corrected.Cube.MeanSpectrum(), corrected.Wavelengths)
	vector := features.Extract(indices, curve)

	report := FieldReport{
		Rows:        corrected.Cube.Rows,
		Cols:        corrected.Cube.Cols,
		Bands:       corrected.Cube.Bands,
		Metadata:    corrected.Metadata,
		Features:    vector,
		Health:      p.health.Analyze(vector),
		Soil:        p.soil.Analyze(vector),
		Pests:       p.pests.Detect(corrected.Cube),
		GeneratedAt: time.Now(),
	}
	return report, indices
}

// AnalyzeField loads a scene from disk, consults the report cache, and runs
// the pipeline on a miss. Cached reports are keyed to the file's identity so
// a re-acquired scene never serves a stale report.
func (p *Pipeline) AnalyzeField(path string) (FieldReport, error) {
	key, err := p.cache.GenerateFileKey(path)
	if err == nil {
		if cached, ok := p.cache.Get(key); ok {
			return cached, nil
		}
	}

	img, err := hyperspectral.Load(path)
	if err != nil {
		return FieldReport{}, fmt.Errorf("analyzing field %s: %w", path, err)
	}

	report, _ := p.AnalyzeImage(img)
	report.SourcePath = path

	if key != "" {
		// A failed cache write never fails an otherwise successful analysis.
		if err := p.cache.Set(key, report); err != nil {
			fmt.Printf("warning: could not cache report for %s: %v\n", path, err)
		}
	}
	return report, nil
}
