package hyperspectral

import (
	"math/rand"
	"strconv"
)

// Simulate builds a synthetic agricultural scene on the canonical
// 400-1000nm/5nm grid: alternating stripes of vegetation and bare soil with
// per-pixel variability. Pass a seeded source for reproducible cubes.
func Simulate(rows, cols int, rng *rand.Rand) *Image {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	wavelengths := canonicalGrid(120)
	cube, _ := NewCube(rows, cols, len(wavelengths))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var spectrum []float64
			if (row+col)%20 < 10 {
				spectrum = vegetationSpectrum(wavelengths, rng)
				health := 0.8 + 0.4*rng.Float64()
				for i := range spectrum {
					spectrum[i] *= health
				}
			} else {
				spectrum = soilSpectrum(wavelengths, rng)
			}
			for band, v := range spectrum {
				v += rng.NormFloat64() * 0.02
				if v < 0 {
					v = 0
				} else if v > 1 {
					v = 1
				}
				cube.Set(row, col, band, v)
			}
		}
	}

	return &Image{
		Cube:        cube,
		Wavelengths: wavelengths,
		Metadata: Metadata{
			"format":              "simulated",
			"description":         "simulated hyperspectral agricultural scene",
			"bands":               strconv.Itoa(len(wavelengths)),
			"wavelength_range":    "400-995nm",
			"spatial_resolution":  "1m",
			"spectral_resolution": "5nm",
		},
	}
}

// vegetationSpectrum follows the classic green-vegetation curve: chlorophyll
// absorption in blue and red, a moderate green bump, the red edge between
// 700 and 750nm and a high NIR plateau.
func vegetationSpectrum(wavelengths []float64, rng *rand.Rand) []float64 {
	spectrum := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		switch {
		case wl < 500:
			spectrum[i] = 0.04 + 0.02*rng.Float64()
		case wl < 600:
			spectrum[i] = 0.08 + 0.04*rng.Float64()
		case wl < 700:
			spectrum[i] = 0.04 + 0.02*rng.Float64()
		case wl < 750:
			spectrum[i] = 0.1 + 0.6*((wl-700)/50)
		default:
			spectrum[i] = 0.7 + 0.2*rng.Float64()
		}
	}
	return spectrum
}

// soilSpectrum rises slowly and monotonically with wavelength, the typical
// signature of dry bare soil.
func soilSpectrum(wavelengths []float64, rng *rand.Rand) []float64 {
	spectrum := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		spectrum[i] = 0.12 + 0.25*(wl-400)/600 + 0.03*rng.Float64()
	}
	return spectrum
}
