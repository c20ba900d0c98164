package hyperspectral

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/cropscope/cropscope-research-cli/internal/utils"
)

var registerDrivers sync.Once

// loadTIFF decodes a TIFF band stack through the GDAL bindings. Stacked
// rasters rarely carry a spectral axis, so the wavelength list falls back to
// the canonical 400-1000nm grid spread over the band count.
func loadTIFF(path string) (*Image, error) {
	registerDrivers.Do(godal.RegisterInternalDrivers)

	var ds *godal.Dataset
	var err error
	utils.ExecuteWithGDALMutex(func() {
		ds, err = godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
			if ec == godal.CE_Warning {
				return nil
			}
			return fmt.Errorf("gdal: %s", msg)
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer ds.Close()

	structure := ds.Structure()
	width, height := structure.SizeX, structure.SizeY
	bands := ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: raster has no bands", ErrFormat)
	}

	cube, err := NewCube(height, width, len(bands))
	if err != nil {
		return nil, err
	}

	data := make([]float64, width*height)
	for bi, band := range bands {
		bandStructure := band.Structure()
		if bandStructure.SizeX != width || bandStructure.SizeY != height {
			return nil, fmt.Errorf("%w: band %d is %dx%d, expected %dx%d",
				ErrFormat, bi+1, bandStructure.SizeX, bandStructure.SizeY, width, height)
		}
		var readErr error
		utils.ExecuteWithGDALMutex(func() {
			readErr = band.Read(0, 0, data, width, height)
		})
		if readErr != nil {
			return nil, fmt.Errorf("%w: reading band %d: %v", ErrIO, bi+1, readErr)
		}
		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				cube.Set(row, col, bi, data[row*width+col])
			}
		}
	}

	wavelengths := canonicalGrid(len(bands))
	metadata := Metadata{
		"format":            "tiff",
		"bands":             strconv.Itoa(len(bands)),
		"wavelength_source": "assumed 400-1000nm grid",
		"wavelength_range":  fmt.Sprintf("%.0f-%.0fnm", wavelengths[0], wavelengths[len(wavelengths)-1]),
	}
	if geoTransform, gtErr := ds.GeoTransform(); gtErr == nil {
		metadata["origin"] = fmt.Sprintf("%.6f,%.6f", geoTransform[0], geoTransform[3])
		metadata["pixel_size"] = fmt.Sprintf("%.6f,%.6f", geoTransform[1], geoTransform[5])
	}

	return &Image{Cube: cube, Wavelengths: wavelengths, Metadata: metadata}, nil
}
