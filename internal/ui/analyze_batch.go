package ui

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/delivery"
	"github.com/cropscope/cropscope-research-cli/internal/notification"
	"github.com/cropscope/cropscope-research-cli/output"
)

// AnalyzeBatch handles the UI for analyzing every scene in a directory
func AnalyzeBatch() {
	PrintWarning("- Every supported scene file directly under the directory will be analyzed.\n- A summary CSV is written to data/result.")

	dir := ReadString("Enter the scene directory: ")
	if dir == "" {
		PrintError("scene directory cannot be empty")
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		PrintError(fmt.Sprintf("not a directory: %s", dir))
		return
	}

	var rng *rand.Rand
	if ReadNoiseChoice() {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	startTime := time.Now()
	pipeline := delivery.NewPipeline(rng)
	reports, err := pipeline.AnalyzeDirectory(dir)
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing directory: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Error analyzing directory %s: %s", dir, err.Error()))
		return
	}

	csvName := fmt.Sprintf("batch_%s", time.Now().Format("2006_01_02_150405"))
	csvPath, err := output.CreateReportCSV(reports, csvName)
	if err != nil {
		PrintError(fmt.Sprintf("Error writing summary CSV: %s", err.Error()))
		return
	}

	for _, report := range reports {
		fmt.Printf("%s%-50s %s (%.1f), %d pests%s\n", ColorGreen,
			report.SourcePath, report.Health.Status, report.Health.OverallScore, len(report.Pests), ColorReset)
		notification.SendDiscordPestAlert(report.SourcePath, report.Pests)
	}

	PrintSuccess(fmt.Sprintf("Analyzed %d scenes in %s\nSummary CSV located at: %s", len(reports), time.Since(startTime), csvPath))
	notification.SendDiscordSuccessNotification(fmt.Sprintf(
		"Successful batch analysis!\n - Directory: %s\n - Scenes: %d\n - Processing time: %s",
		dir, len(reports), time.Since(startTime).String()))
}
