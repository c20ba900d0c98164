package hyperspectral

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ENVI raw cubes come as a binary payload plus a plain-text header that
// declares shape, sample type, interleave and the wavelength list.
type enviHeader struct {
	samples     int
	lines       int
	bands       int
	dataType    int
	interleave  string
	byteOrder   int
	wavelengths []float64
	description string
}

var enviSampleSizes = map[int]int{
	1:  1, // uint8
	2:  2, // int16
	3:  4, // int32
	4:  4, // float32
	5:  8, // float64
	12: 2, // uint16
}

// resolveENVIPair locates the header/payload couple for a path that may
// point at either half of the pair.
func resolveENVIPair(path string) (hdrPath, rawPath string, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".hdr" {
		hdrPath = path
		base := strings.TrimSuffix(path, filepath.Ext(path))
		for _, candidate := range []string{base, base + ".raw", base + ".img", base + ".bil", base + ".bip", base + ".bsq"} {
			if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
				return hdrPath, candidate, nil
			}
		}
		return "", "", fmt.Errorf("%w: no payload found next to header %s", ErrFormat, filepath.Base(path))
	}

	for _, candidate := range []string{path + ".hdr", strings.TrimSuffix(path, filepath.Ext(path)) + ".hdr"} {
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, path, nil
		}
	}
	return "", "", fmt.Errorf("%w: no ENVI header found for %s", ErrFormat, filepath.Base(path))
}

func loadENVI(path string) (*Image, error) {
	hdrPath, rawPath, err := resolveENVIPair(path)
	if err != nil {
		return nil, err
	}

	hdrRaw, err := os.ReadFile(hdrPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading header %s: %v", ErrIO, hdrPath, err)
	}
	header, err := parseENVIHeader(string(hdrRaw))
	if err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(rawPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload %s: %v", ErrIO, rawPath, err)
	}

	cube, err := decodeENVIPayload(header, payload)
	if err != nil {
		return nil, err
	}

	wavelengths := header.wavelengths
	metadata := Metadata{
		"format":     "envi",
		"interleave": header.interleave,
		"bands":      strconv.Itoa(header.bands),
	}
	if header.description != "" {
		metadata["description"] = header.description
	}
	if len(wavelengths) == 0 {
		wavelengths = canonicalGrid(header.bands)
		metadata["wavelength_source"] = "assumed 400-1000nm grid"
	}
	if err := validateAxis(wavelengths, header.bands); err != nil {
		return nil, err
	}
	metadata["wavelength_range"] = fmt.Sprintf("%.0f-%.0fnm", wavelengths[0], wavelengths[len(wavelengths)-1])

	return &Image{Cube: cube, Wavelengths: wavelengths, Metadata: metadata}, nil
}

func parseENVIHeader(content string) (*enviHeader, error) {
	header := &enviHeader{interleave: "bsq", byteOrder: 0}

	// Fold brace-delimited blocks onto single lines before key=value parsing.
	var lines []string
	var pending strings.Builder
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if inBlock {
			pending.WriteString(" ")
			pending.WriteString(line)
			if strings.Contains(line, "}") {
				lines = append(lines, pending.String())
				pending.Reset()
				inBlock = false
			}
			continue
		}
		if strings.Contains(line, "{") && !strings.Contains(line, "}") {
			pending.WriteString(line)
			inBlock = true
			continue
		}
		lines = append(lines, line)
	}
	if inBlock {
		return nil, fmt.Errorf("%w: unterminated block in ENVI header", ErrFormat)
	}

	for _, line := range lines {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "samples":
			header.samples, err = strconv.Atoi(value)
		case "lines":
			header.lines, err = strconv.Atoi(value)
		case "bands":
			header.bands, err = strconv.Atoi(value)
		case "data type":
			header.dataType, err = strconv.Atoi(value)
		case "byte order":
			header.byteOrder, err = strconv.Atoi(value)
		case "interleave":
			header.interleave = strings.ToLower(value)
		case "description":
			header.description = strings.Trim(value, "{} ")
		case "wavelength":
			header.wavelengths, err = parseWavelengthBlock(value)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: ENVI header field %q: %v", ErrFormat, key, err)
		}
	}

	if header.samples <= 0 || header.lines <= 0 || header.bands <= 0 {
		return nil, fmt.Errorf("%w: ENVI header missing shape (samples=%d lines=%d bands=%d)",
			ErrFormat, header.samples, header.lines, header.bands)
	}
	if _, ok := enviSampleSizes[header.dataType]; !ok {
		return nil, fmt.Errorf("%w: ENVI data type %d not supported", ErrFormat, header.dataType)
	}
	switch header.interleave {
	case "bil", "bip", "bsq":
	default:
		return nil, fmt.Errorf("%w: ENVI interleave %q not supported", ErrFormat, header.interleave)
	}
	return header, nil
}

func parseWavelengthBlock(value string) ([]float64, error) {
	value = strings.Trim(value, "{} ")
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	wavelengths := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		wavelengths = append(wavelengths, w)
	}
	return wavelengths, nil
}

func decodeENVIPayload(header *enviHeader, payload []byte) (*Cube, error) {
	size := enviSampleSizes[header.dataType]
	expected := header.lines * header.samples * header.bands * size
	if len(payload) != expected {
		return nil, fmt.Errorf("%w: payload is %d bytes, header declares %d (%dx%dx%d, %d bytes/sample)",
			ErrFormat, len(payload), expected, header.lines, header.samples, header.bands, size)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if header.byteOrder == 1 {
		order = binary.BigEndian
	}

	sampleAt := func(i int) float64 {
		chunk := payload[i*size:]
		switch header.dataType {
		case 1:
			return float64(chunk[0])
		case 2:
			return float64(int16(order.Uint16(chunk)))
		case 3:
			return float64(int32(order.Uint32(chunk)))
		case 4:
			return float64(math.Float32frombits(order.Uint32(chunk)))
		case 5:
			return math.Float64frombits(order.Uint64(chunk))
		case 12:
			return float64(order.Uint16(chunk))
		}
		return 0
	}

	cube, err := NewCube(header.lines, header.samples, header.bands)
	if err != nil {
		return nil, err
	}
	rows, cols, bands := header.lines, header.samples, header.bands
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			for band := 0; band < bands; band++ {
				var i int
				switch header.interleave {
				case "bsq":
					i = band*rows*cols + row*cols + col
				case "bil":
					i = row*bands*cols + band*cols + col
				case "bip":
					i = (row*cols+col)*bands + band
				}
				cube.Set(row, col, band, sampleAt(i))
			}
		}
	}
	return cube, nil
}
