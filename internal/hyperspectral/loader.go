package hyperspectral

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load decodes a hyperspectral image from disk, dispatching on the file
// extension: ENVI-style raw/header pairs, TIFF band stacks, or a generic
// best-effort probe for anything else. The input file is never mutated.
func Load(path string) (*Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".raw", ".hdr", ".img", ".bil", ".bip", ".bsq":
		return loadENVI(path)
	case ".tif", ".tiff":
		return loadTIFF(path)
	default:
		return loadGeneric(path)
	}
}

// loadGeneric is the best-effort fallback for unknown extensions: first a
// sibling ENVI header probe, then a raster-driver open. If neither decodes
// the file the format is considered undeterminable.
func loadGeneric(path string) (*Image, error) {
	if _, _, err := resolveENVIPair(path); err == nil {
		return loadENVI(path)
	}
	img, err := loadTIFF(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot determine encoding of %s", ErrFormat, filepath.Base(path))
	}
	img.Metadata["format"] = "generic"
	return img, nil
}
