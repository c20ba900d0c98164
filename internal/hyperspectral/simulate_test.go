package hyperspectral

import (
	"math/rand"
	"testing"
)

func TestSimulateShapeAndRange(t *testing.T) {
	img := Simulate(8, 6, rand.New(rand.NewSource(5)))

	if img.Cube.Rows != 8 || img.Cube.Cols != 6 {
		t.Fatalf("shape %dx%d, want 8x6", img.Cube.Rows, img.Cube.Cols)
	}
	if img.Cube.Bands != 120 || len(img.Wavelengths) != 120 {
		t.Fatalf("bands = %d, want 120", img.Cube.Bands)
	}
	if img.Wavelengths[0] != 400 {
		t.Errorf("grid starts at %g, want 400", img.Wavelengths[0])
	}

	for row := 0; row < img.Cube.Rows; row++ {
		for col := 0; col < img.Cube.Cols; col++ {
			for band := 0; band < img.Cube.Bands; band++ {
				v := img.Cube.At(row, col, band)
				if v < 0 || v > 1 {
					t.Fatalf("sample (%d,%d,%d) = %g outside [0,1]", row, col, band, v)
				}
			}
		}
	}
}

func TestSimulateSeededDeterminism(t *testing.T) {
	first := Simulate(4, 4, rand.New(rand.NewSource(9)))
	second := Simulate(4, 4, rand.New(rand.NewSource(9)))

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			for band := 0; band < first.Cube.Bands; band++ {
				if first.Cube.At(row, col, band) != second.Cube.At(row, col, band) {
					t.Fatal("same seed should produce the same scene")
				}
			}
		}
	}
}

func TestSimulateVegetationSignature(t *testing.T) {
	img := Simulate(10, 10, rand.New(rand.NewSource(11)))

	// On average the NIR plateau must sit well above the red absorption,
	// whatever the vegetation/soil mix.
	mean := img.Cube.MeanSpectrum()
	var red, nir float64
	var redCount, nirCount int
	for i, wl := range img.Wavelengths {
		if wl >= 600 && wl < 700 {
			red += mean[i]
			redCount++
		}
		if wl >= 800 {
			nir += mean[i]
			nirCount++
		}
	}
	red /= float64(redCount)
	nir /= float64(nirCount)

	if nir <= red {
		t.Errorf("mean NIR %g should exceed mean red %g", nir, red)
	}
}
