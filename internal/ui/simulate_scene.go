package ui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/hyperspectral"
	"github.com/cropscope/cropscope-research-cli/internal/properties"
)

// SimulateScene handles the UI for generating a synthetic field scene
func SimulateScene() {
	PrintWarning("- The simulated scene is written as an ENVI raw/header pair under data/simulated.\n- Use it to exercise the analysis pipeline without field imagery.")

	rows, err := ReadPositiveInt("Enter the scene height in pixels: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	cols, err := ReadPositiveInt("Enter the scene width in pixels: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	seed, err := ReadPositiveInt("Enter a seed for the generator: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	img := hyperspectral.Simulate(rows, cols, rand.New(rand.NewSource(int64(seed))))

	outputDir := filepath.Join(properties.RootPath(), "data", "simulated")
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		PrintError(fmt.Sprintf("Failed to create output folder: %s", err.Error()))
		return
	}

	basePath := filepath.Join(outputDir, fmt.Sprintf("simulated_%s", time.Now().Format("2006_01_02_150405")))
	rawPath, hdrPath, err := hyperspectral.WriteENVI(img, basePath)
	if err != nil {
		PrintError(fmt.Sprintf("Error writing scene: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Simulated scene created!\n Payload located at: %s\n Header located at: %s", rawPath, hdrPath))
}
