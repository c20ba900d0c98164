package spectral

import (
	"math"

	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
)

// denominators smaller than this emit 0 instead of blowing up to ±Inf
const denominatorEpsilon = 1e-10

// BandRequirement names one input of an index formula by the wavelength it
// should be sampled at.
type BandRequirement struct {
	Role       string
	Wavelength float64 // nm
}

// Definition describes one spectral index: the bands it needs, the formula
// combining them (inputs aligned with Requires), and the theoretical range
// the output is clamped to.
type Definition struct {
	Name     string
	Requires []BandRequirement
	Min, Max float64
	Formula  func(v []float64) float64
}

// DefaultDefinitions is the standard agricultural index table. The engine
// takes the table as input so alternate sets can be substituted.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name: "ndvi",
			Requires: []BandRequirement{
				{Role: "red", Wavelength: 670},
				{Role: "nir", Wavelength: 800},
			},
			Min: -1, Max: 1,
			Formula: func(v []float64) float64 {
				red, nir := v[0], v[1]
				return safeRatio(nir-red, nir+red)
			},
		},
		{
			Name: "evi",
			Requires: []BandRequirement{
				{Role: "blue", Wavelength: 450},
				{Role: "red", Wavelength: 670},
				{Role: "nir", Wavelength: 800},
			},
			Min: -1, Max: 1,
			Formula: func(v []float64) float64 {
				blue, red, nir := v[0], v[1], v[2]
				return 2.5 * safeRatio(nir-red, nir+6*red-7.5*blue+1)
			},
		},
		{
			Name: "savi",
			Requires: []BandRequirement{
				{Role: "red", Wavelength: 670},
				{Role: "nir", Wavelength: 800},
			},
			Min: -1.5, Max: 1.5,
			Formula: func(v []float64) float64 {
				const l = 0.5
				red, nir := v[0], v[1]
				return (1 + l) * safeRatio(nir-red, nir+red+l)
			},
		},
		{
			Name: "ari",
			Requires: []BandRequirement{
				{Role: "green", Wavelength: 550},
				{Role: "rededge", Wavelength: 700},
			},
			Min: -100, Max: 100,
			Formula: func(v []float64) float64 {
				green, rededge := v[0], v[1]
				if green < denominatorEpsilon || rededge < denominatorEpsilon {
					return 0
				}
				return 1/green - 1/rededge
			},
		},
		{
			Name: "pssr",
			Requires: []BandRequirement{
				{Role: "red", Wavelength: 670},
				{Role: "nir", Wavelength: 800},
			},
			Min: 0, Max: 100,
			Formula: func(v []float64) float64 {
				red, nir := v[0], v[1]
				return safeRatio(nir, red)
			},
		},
	}
}

func safeRatio(numerator, denominator float64) float64 {
	if math.Abs(denominator) < denominatorEpsilon {
		return 0
	}
	return numerator / denominator
}

// Engine computes per-pixel index maps from a corrected cube. It holds no
// state beyond its immutable definition table and the band tolerance.
type Engine struct {
	definitions []Definition
	toleranceNm float64
}

func NewEngine(definitions []Definition, toleranceNm float64) *Engine {
	defs := make([]Definition, len(definitions))
	copy(defs, definitions)
	return &Engine{definitions: defs, toleranceNm: toleranceNm}
}

// Calculate evaluates every definition whose required bands all lie within
// tolerance of an actual cube band. Indices with an out-of-tolerance
// requirement are simply absent from the result; outputs are clamped to the
// definition's range. Never fails.
func (e *Engine) Calculate(cube *hyperspectral.Cube, wavelengths []float64) map[string][][]float64 {
	result := make(map[string][][]float64, len(e.definitions))

	for _, def := range e.definitions {
		bandIdx := make([]int, len(def.Requires))
		available := true
		for i, req := range def.Requires {
			idx, distance := NearestBand(wavelengths, req.Wavelength)
			if idx < 0 || distance > e.toleranceNm {
				available = false
				break
			}
			bandIdx[i] = idx
		}
		if !available {
			continue
		}

		grid := make([][]float64, cube.Rows)
		inputs := make([]float64, len(bandIdx))
		for row := 0; row < cube.Rows; row++ {
			grid[row] = make([]float64, cube.Cols)
			for col := 0; col < cube.Cols; col++ {
				for i, band := range bandIdx {
					inputs[i] = cube.At(row, col, band)
				}
				v := def.Formula(inputs)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					v = 0
				}
				if v < def.Min {
					v = def.Min
				} else if v > def.Max {
					v = def.Max
				}
				grid[row][col] = v
			}
		}
		result[def.Name] = grid
	}

	return result
}

// NearestBand returns the band index whose wavelength is closest to the
// target, ties broken toward the lower index, plus the distance in nm.
// Returns (-1, +Inf) for an empty axis.
func NearestBand(wavelengths []float64, target float64) (int, float64) {
	best := -1
	bestDistance := math.Inf(1)
	for i, w := range wavelengths {
		d := math.Abs(w - target)
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return best, bestDistance
}
