package output

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/properties"
	"github.com/cropscope/cropscope-research-cli/internal/utils"
)

func normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	norm := (value - min) / (max - min)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

// valueToColor maps a normalized index value onto a blue-green-red ramp.
func valueToColor(norm float64) color.RGBA {
	var r, g, b uint8
	if norm <= 0.5 {
		// Transition from blue to green
		ratio := norm / 0.5
		r = 0
		g = uint8(255 * ratio)
		b = uint8(255 * (1 - ratio))
	} else {
		// Transition from green to red
		ratio := (norm - 0.5) / 0.5
		r = uint8(255 * ratio)
		g = uint8(255 * (1 - ratio))
		b = 0
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// CreateIndexImages renders one heatmap JPEG per computed index under
// data/result/<field>/indices and returns the written paths.
func CreateIndexImages(indices map[string][][]float64, field string, date time.Time) ([]string, error) {
	resultPath := fmt.Sprintf("%s/data/result/%s/indices", properties.RootPath(), field)
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %w", err)
	}

	imagePaths := []string{}
	for _, name := range utils.SortedKeys(indices) {
		grid := indices[name]
		if len(grid) == 0 || len(grid[0]) == 0 {
			continue
		}
		height, width := len(grid), len(grid[0])

		min, max := grid[0][0], grid[0][0]
		for _, row := range grid {
			for _, v := range row {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
		}

		newImage := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				newImage.Set(x, y, valueToColor(normalize(grid[y][x], min, max)))
			}
		}

		outputPath := fmt.Sprintf("%s/%s_%s_%s.jpeg", resultPath, field, name, date.Format("2006_01_02"))
		outputFile, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("error creating JPEG file: %w", err)
		}

		err = jpeg.Encode(outputFile, newImage, &jpeg.Options{
			Quality: 100,
		})
		outputFile.Close()
		if err != nil {
			return nil, fmt.Errorf("error encoding JPEG file: %w", err)
		}

		fmt.Println("JPEG image created successfully as", outputPath)
		imagePaths = append(imagePaths, outputPath)
	}

	return imagePaths, nil
}
