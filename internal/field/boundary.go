package field

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/cropscope/cropscope-research-cli/internal/properties"
)

const metersPerDegree = 111320.0

// Boundary is a surveyed field outline loaded from a GeoJSON feature. The
// centroid and area come from the feature geometry; CropType is read from the
// feature properties when present.
type Boundary struct {
	Name        string
	CropType    string
	CentroidLat float64
	CentroidLon float64
	Hectares    float64
}

// LoadBoundary reads data/fields/<name>.geojson under the configured root
// and reduces its first feature to a Boundary.
func LoadBoundary(name string) (*Boundary, error) {
	path := filepath.Join(properties.RootPath(), "data", "fields", name+".geojson")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field boundary %s: %w", name, err)
	}

	collection, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing field boundary %s: %w", name, err)
	}
	if len(collection.Features) == 0 {
		return nil, fmt.Errorf("field boundary %s has no features", name)
	}

	feature := collection.Features[0]
	centroid, area := planar.CentroidArea(feature.Geometry)
	// Clockwise rings carry a negative signed area; only zero is degenerate.
	if area == 0 {
		return nil, fmt.Errorf("field boundary %s has a degenerate geometry", name)
	}

	boundary := &Boundary{
		Name:        name,
		CentroidLat: centroid.Y(),
		CentroidLon: centroid.X(),
		Hectares:    degreesAreaToHectares(area, centroid.Y()),
	}
	if crop, ok := feature.Properties["crop_type"].(string); ok {
		boundary.CropType = crop
	}
	return boundary, nil
}

// ListBoundaries names the field boundary files available under the root.
func ListBoundaries() ([]string, error) {
	dir := filepath.Join(properties.RootPath(), "data", "fields")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing field boundaries: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".geojson") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".geojson"))
	}
	sort.Strings(names)
	return names, nil
}

// degreesAreaToHectares converts a planar area in squared degrees to
// hectares, correcting longitude spacing by the latitude of the centroid.
func degreesAreaToHectares(area, latitude float64) float64 {
	squareMeters := math.Abs(area) * metersPerDegree * metersPerDegree * math.Cos(latitude*math.Pi/180)
	return squareMeters / 10000
}
