package ui

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/delivery"
	"github.com/cropscope/cropscope-research-cli/internal/field"
	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
	"github.com/cropscope/cropscope-research-cli/output"
)

// RenderScene handles the UI for rendering index heatmaps and the pest
// overlay for a single scene
func RenderScene() {
	PrintWarning("- Heatmaps and overlays are written under data/result/<scene>.\n- An optional field boundary from data/fields georeferences the pest detections.")

	path, err := ReadScenePath()
	if err != nil {
		PrintError(err.Error())
		return
	}

	var rng *rand.Rand
	if ReadNoiseChoice() {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	img, err := hyperspectral.Load(path)
	if err != nil {
		PrintError(fmt.Sprintf("Error loading scene: %s", err.Error()))
		return
	}

	pipeline := delivery.NewPipeline(rng)
	report, indices := pipeline.AnalyzeImage(img)

	sceneName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	date := time.Now()

	imagePaths, err := output.CreateIndexImages(indices, sceneName, date)
	if err != nil {
		PrintError(fmt.Sprintf("Error rendering index heatmaps: %s", err.Error()))
		return
	}

	corrected := hyperspectral.Preprocess(img)
	overlayPath, err := output.CreatePestOverlayImage(corrected, report.Pests, sceneName, date)
	if err != nil {
		PrintError(fmt.Sprintf("Error rendering pest overlay: %s", err.Error()))
		return
	}

	var boundary *field.Boundary
	boundaryName := ReadString("Enter the field boundary name (empty to skip): ")
	if boundaryName != "" {
		boundary, err = field.LoadBoundary(boundaryName)
		if err != nil {
			PrintError(err.Error())
			return
		}
		fmt.Printf("%sField %s: %.2f ha, centroid (%.5f, %.5f)%s\n", ColorGreen,
			boundary.Name, boundary.Hectares, boundary.CentroidLat, boundary.CentroidLon, ColorReset)
	}

	geojsonPath, err := output.CreateDetectionsGeoJSON(report.Pests, boundary, sceneName)
	if err != nil {
		PrintError(fmt.Sprintf("Error writing detections GeoJSON: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Rendered %d heatmaps\nPest overlay located at: %s\nDetections GeoJSON located at: %s",
		len(imagePaths), overlayPath, geojsonPath))
}
