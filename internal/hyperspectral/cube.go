package hyperspectral

import (
	"errors"
	"fmt"
)

// ErrFormat reports an unsupported, ambiguous or internally inconsistent
// image encoding. ErrIO reports a file that could not be read or whose
// payload is truncated. Both are returned from Load and never retried here;
// retry policy belongs to the caller.
var (
	ErrFormat = errors.New("unsupported image format")
	ErrIO     = errors.New("image read failed")
)

// Metadata carries descriptive fields about an image (source format,
// resolutions, acquisition notes). Treated as immutable once produced.
type Metadata map[string]string

func (m Metadata) clone() Metadata {
	out := make(Metadata, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Cube is a hyperspectral raster indexed by (row, col, band). Samples are
// radiance on load and reflectance in [0,1] after Preprocess.
type Cube struct {
	Rows  int
	Cols  int
	Bands int

	samples []float64
}

func NewCube(rows, cols, bands int) (*Cube, error) {
	if rows <= 0 || cols <= 0 || bands <= 0 {
		return nil, fmt.Errorf("%w: invalid cube shape %dx%dx%d", ErrFormat, rows, cols, bands)
	}
	return &Cube{
		Rows:    rows,
		Cols:    cols,
		Bands:   bands,
		samples: make([]float64, rows*cols*bands),
	}, nil
}

func (c *Cube) At(row, col, band int) float64 {
	return c.samples[(row*c.Cols+col)*c.Bands+band]
}

func (c *Cube) Set(row, col, band int, value float64) {
	c.samples[(row*c.Cols+col)*c.Bands+band] = value
}

// Band extracts one spectral band as a row-major grid.
func (c *Cube) Band(band int) [][]float64 {
	grid := make([][]float64, c.Rows)
	for row := range grid {
		grid[row] = make([]float64, c.Cols)
		for col := range grid[row] {
			grid[row][col] = c.At(row, col, band)
		}
	}
	return grid
}

// MeanSpectrum averages every pixel's spectrum into one curve of length Bands.
func (c *Cube) MeanSpectrum() []float64 {
	mean := make([]float64, c.Bands)
	for i, v := range c.samples {
		mean[i%c.Bands] += v
	}
	pixels := float64(c.Rows * c.Cols)
	for band := range mean {
		mean[band] /= pixels
	}
	return mean
}

func (c *Cube) Clone() *Cube {
	out := &Cube{Rows: c.Rows, Cols: c.Cols, Bands: c.Bands, samples: make([]float64, len(c.samples))}
	copy(out.samples, c.samples)
	return out
}

// Image bundles a decoded cube with its wavelength axis and metadata.
// Invariant: len(Wavelengths) == Cube.Bands and the axis is strictly
// increasing; Load enforces this before returning.
type Image struct {
	Cube        *Cube
	Wavelengths []float64
	Metadata    Metadata
}

func validateAxis(wavelengths []float64, bands int) error {
	if len(wavelengths) != bands {
		return fmt.Errorf("%w: %d wavelengths for %d bands", ErrFormat, len(wavelengths), bands)
	}
	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i] <= wavelengths[i-1] {
			return fmt.Errorf("%w: wavelength axis not strictly increasing at band %d", ErrFormat, i)
		}
	}
	return nil
}

// canonicalGrid spreads the 400-1000nm agricultural sensor range over the
// given band count. Used when an encoding carries no wavelength list.
func canonicalGrid(bands int) []float64 {
	grid := make([]float64, bands)
	if bands == 1 {
		grid[0] = 400
		return grid
	}
	for i := range grid {
		grid[i] = 400 + 600*float64(i)/float64(bands)
	}
	return grid
}
