package output

import (
	"fmt"
	"image/jpeg"
	"os"
	"time"

	"github.com/fogleman/gg"

	"github.com/cropscope/cropscope-research-cli/internal/analysis"
	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
	"github.com/cropscope/cropscope-research-cli/internal/properties"
	"github.com/cropscope/cropscope-research-cli/internal/spectral"
)

// CreatePestOverlayImage renders the scene's NIR band in grayscale and marks
// every pest detection with a severity-colored circle and label.
func CreatePestOverlayImage(img *hyperspectral.Image, detections []analysis.PestDetection, field string, date time.Time) (string, error) {
	resultPath := fmt.Sprintf("%s/data/result/%s/pests", properties.RootPath(), field)
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %w", err)
	}
	outputPath := fmt.Sprintf("%s/%s_pests_%s.jpeg", resultPath, field, date.Format("2006_01_02"))

	cube := img.Cube
	nirBand, _ := spectral.NearestBand(img.Wavelengths, 800)
	if nirBand < 0 {
		nirBand = cube.Bands - 1
	}

	dc := gg.NewContext(cube.Cols, cube.Rows)
	for y := 0; y < cube.Rows; y++ {
		for x := 0; x < cube.Cols; x++ {
			v := cube.At(y, x, nirBand)
			dc.SetRGB(v, v, v)
			dc.SetPixel(x, y)
		}
	}

	radius := float64(minDimension(cube.Cols, cube.Rows)) / 20
	if radius < 3 {
		radius = 3
	}
	for _, detection := range detections {
		clr := properties.SeverityColorMap[detection.Severity]
		x := detection.LocationX * float64(cube.Cols)
		y := detection.LocationY * float64(cube.Rows)

		dc.SetRGBA(float64(clr.R)/255, float64(clr.G)/255, float64(clr.B)/255, 0.9)
		dc.SetLineWidth(2)
		dc.DrawCircle(x, y, radius)
		dc.Stroke()

		label := fmt.Sprintf("%s (%.0f%%)", detection.Type, detection.Confidence*100)
		dc.DrawStringAnchored(label, x, y-radius-4, 0.5, 0)
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer outputFile.Close()

	if err := jpeg.Encode(outputFile, dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	fmt.Printf("Pest overlay image saved to: %s\n", outputPath)
	return outputPath, nil
}

func minDimension(a, b int) int {
	if a < b {
		return a
	}
	return b
}
