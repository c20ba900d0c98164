package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/cropscope/cropscope-research-cli/internal/analysis"
	"github.com/cropscope/cropscope-research-cli/internal/field"
	"github.com/cropscope/cropscope-research-cli/internal/properties"
)

// CreateDetectionsGeoJSON writes pest detections as a GeoJSON point
// collection under data/result/<fieldName>. With a boundary the normalized
// detection locations are placed around the field centroid; without one they
// stay in scene-relative coordinates.
func CreateDetectionsGeoJSON(detections []analysis.PestDetection, boundary *field.Boundary, fieldName string) (string, error) {
	resultPath := fmt.Sprintf("%s/data/result/%s", properties.RootPath(), fieldName)
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %w", err)
	}
	outputPath := fmt.Sprintf("%s/%s_detections.geojson", resultPath, fieldName)

	collection := geojson.NewFeatureCollection()
	for _, detection := range detections {
		point := orb.Point{detection.LocationX, detection.LocationY}
		if boundary != nil {
			// Offset from the centroid, scaled to roughly the field extent.
			point = orb.Point{
				boundary.CentroidLon + (detection.LocationX-0.5)*0.01,
				boundary.CentroidLat + (detection.LocationY-0.5)*0.01,
			}
		}

		feature := geojson.NewFeature(point)
		feature.Properties["type"] = detection.Type
		feature.Properties["confidence"] = detection.Confidence
		feature.Properties["severity"] = detection.Severity
		feature.Properties["recommendation"] = detection.Recommendation
		collection.Append(feature)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("error creating GeoJSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(collection); err != nil {
		return "", fmt.Errorf("error encoding GeoJSON: %w", err)
	}

	fmt.Println("GeoJSON file created successfully at", outputPath)
	return outputPath, nil
}
