package hyperspectral

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
)

// WriteENVI persists an image as an ENVI raw/header pair (float32, BSQ,
// little endian) at basePath.raw / basePath.hdr. Used to materialize
// simulated scenes so they can round-trip through Load.
func WriteENVI(img *Image, basePath string) (rawPath, hdrPath string, err error) {
	cube := img.Cube
	rawPath = basePath + ".raw"
	hdrPath = basePath + ".hdr"

	payload := make([]byte, cube.Rows*cube.Cols*cube.Bands*4)
	i := 0
	for band := 0; band < cube.Bands; band++ {
		for row := 0; row < cube.Rows; row++ {
			for col := 0; col < cube.Cols; col++ {
				binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(float32(cube.At(row, col, band))))
				i++
			}
		}
	}
	if err = os.WriteFile(rawPath, payload, 0644); err != nil {
		return "", "", fmt.Errorf("writing ENVI payload: %w", err)
	}

	formatted := make([]string, len(img.Wavelengths))
	for i, w := range img.Wavelengths {
		formatted[i] = fmt.Sprintf("%.1f", w)
	}

	var header strings.Builder
	header.WriteString("ENVI\n")
	if desc := img.Metadata["description"]; desc != "" {
		fmt.Fprintf(&header, "description = { %s }\n", desc)
	}
	fmt.Fprintf(&header, "samples = %d\n", cube.Cols)
	fmt.Fprintf(&header, "lines = %d\n", cube.Rows)
	fmt.Fprintf(&header, "bands = %d\n", cube.Bands)
	header.WriteString("data type = 4\n")
	header.WriteString("interleave = bsq\n")
	header.WriteString("byte order = 0\n")
	fmt.Fprintf(&header, "wavelength = { %s }\n", strings.Join(formatted, ", "))

	if err = os.WriteFile(hdrPath, []byte(header.String()), 0644); err != nil {
		return "", "", fmt.Errorf("writing ENVI header: %w", err)
	}
	return rawPath, hdrPath, nil
}
