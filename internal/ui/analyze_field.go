package ui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/delivery"
	"github.com/cropscope/cropscope-research-cli/internal/notification"
)

// AnalyzeField handles the UI for analyzing a single hyperspectral scene
func AnalyzeField() {
	PrintWarning("- Supported scene formats: ENVI raw/header pairs and TIFF stacks.\n- Reports are cached under data/reports and reused for unchanged files.")

	path, err := ReadScenePath()
	if err != nil {
		PrintError(err.Error())
		return
	}

	var rng *rand.Rand
	if ReadNoiseChoice() {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	startTime := time.Now()
	pipeline := delivery.NewPipeline(rng)
	report, err := pipeline.AnalyzeField(path)
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing scene: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Error analyzing scene %s: %s", path, err.Error()))
		return
	}

	printReport(report)
	PrintSuccess(fmt.Sprintf("Analysis finished in %s", time.Since(startTime)))
	notification.SendDiscordSuccessNotification(fmt.Sprintf(
		"Successful field analysis!\n - Scene: %s\n - Health: %s (%.1f)\n - Pests: %d\n - Processing time: %s",
		path, report.Health.Status, report.Health.OverallScore, len(report.Pests), time.Since(startTime).String()))
	notification.SendDiscordPestAlert(path, report.Pests)
}

func printReport(report delivery.FieldReport) {
	fmt.Printf("%s\nScene: %s (%dx%d, %d bands)%s\n", ColorGreen, report.SourcePath, report.Cols, report.Rows, report.Bands, ColorReset)

	fmt.Printf("%s\nCrop health:%s\n", ColorGreen, ColorReset)
	fmt.Printf("  Overall score:       %.1f (%s)\n", report.Health.OverallScore, report.Health.Status)
	fmt.Printf("  Chlorophyll content: %.1f\n", report.Health.ChlorophyllContent)
	fmt.Printf("  Water stress:        %.1f\n", report.Health.WaterStress)
	fmt.Printf("  Nutrient deficiency: %.1f\n", report.Health.NutrientDeficiency)
	fmt.Printf("  Disease risk:        %.1f\n", report.Health.DiseaseRisk)
	if report.Health.Degraded {
		PrintWarning("Health result is degraded: " + report.Health.DegradedReason)
	}
	for _, recommendation := range report.Health.Recommendations {
		fmt.Printf("  - %s\n", recommendation)
	}

	fmt.Printf("%s\nSoil analysis:%s\n", ColorGreen, ColorReset)
	fmt.Printf("  pH level:         %.1f\n", report.Soil.PHLevel)
	fmt.Printf("  Organic matter:   %.1f%%\n", report.Soil.OrganicMatter)
	fmt.Printf("  Moisture content: %.1f%%\n", report.Soil.MoistureContent)
	fmt.Printf("  Nitrogen:         %.1f\n", report.Soil.NitrogenLevel)
	fmt.Printf("  Phosphorus:       %.1f\n", report.Soil.PhosphorusLevel)
	fmt.Printf("  Potassium:        %.1f\n", report.Soil.PotassiumLevel)
	for _, recommendation := range report.Soil.Recommendations {
		fmt.Printf("  - %s\n", recommendation)
	}

	if len(report.Pests) == 0 {
		fmt.Printf("%s\nNo pest detections.%s\n", ColorGreen, ColorReset)
		return
	}
	fmt.Printf("%s\nPest detections:%s\n", ColorYellow, ColorReset)
	for _, detection := range report.Pests {
		fmt.Printf("  %s [%s] confidence %.0f%% at (%.2f, %.2f)\n",
			detection.Type, detection.Severity, detection.Confidence*100, detection.LocationX, detection.LocationY)
		fmt.Printf("    %s\n", detection.Recommendation)
	}
}
