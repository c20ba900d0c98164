package hyperspectral

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// degenerateFill replaces non-finite samples so NaN/Inf never reach the
// index engine. All-zero and saturated bands keep their clamped value and
// are only recorded in the provenance metadata.
const degenerateFill = 0.0

// Preprocess converts a raw cube to reflectance: non-finite samples are
// replaced, scene radiance above 1 is normalized by the scene maximum, and
// everything is clamped to [0,1]. The returned image carries provenance
// metadata describing what was applied. Deterministic for identical input.
func Preprocess(img *Image) *Image {
	cube := img.Cube.Clone()

	invalid := 0
	sceneMax := 0.0
	for i, v := range cube.samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			cube.samples[i] = degenerateFill
			invalid++
			continue
		}
		if v > sceneMax {
			sceneMax = v
		}
	}

	scale := 1.0
	if sceneMax > 1 {
		scale = sceneMax
	}
	for i, v := range cube.samples {
		v /= scale
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		cube.samples[i] = v
	}

	var degenerate []string
	for band := 0; band < cube.Bands; band++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for row := 0; row < cube.Rows; row++ {
			for col := 0; col < cube.Cols; col++ {
				v := cube.At(row, col, band)
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
		if (lo == 0 && hi == 0) || lo == 1 {
			degenerate = append(degenerate, strconv.Itoa(band))
		}
	}

	metadata := img.Metadata.clone()
	metadata["correction"] = "scene_max_normalization"
	metadata["clip_range"] = "0-1"
	if scale != 1 {
		metadata["radiance_scale"] = fmt.Sprintf("%.6g", scale)
	}
	if invalid > 0 {
		metadata["invalid_samples"] = strconv.Itoa(invalid)
	}
	if len(degenerate) > 0 {
		metadata["degenerate_bands"] = strings.Join(degenerate, ",")
	}

	wavelengths := make([]float64, len(img.Wavelengths))
	copy(wavelengths, img.Wavelengths)

	return &Image{Cube: cube, Wavelengths: wavelengths, Metadata: metadata}
}
