package ui

import (
	"fmt"

	"github.com/cropscope/cropscope-research-cli/internal/field"
)

// ListFields handles the UI for listing available field boundaries
func ListFields() {
	PrintWarning("To add a new field, place its '.geojson' file in the 'data/fields' folder.")

	names, err := field.ListBoundaries()
	if err != nil {
		PrintError(err.Error())
		return
	}
	if len(names) == 0 {
		PrintError("no field boundaries found")
		return
	}

	fmt.Printf("%s\nAvailable fields:%s\n", ColorGreen, ColorReset)
	for _, name := range names {
		boundary, err := field.LoadBoundary(name)
		if err != nil {
			fmt.Printf("%s- %s (unreadable: %s)%s\n", ColorYellow, name, err.Error(), ColorReset)
			continue
		}
		crop := boundary.CropType
		if crop == "" {
			crop = "unknown crop"
		}
		fmt.Printf("%s- %s: %s, %.2f ha%s\n", ColorGreen, name, crop, boundary.Hectares, ColorReset)
	}
}
