package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/cropscope/cropscope-research-cli/internal/delivery"
	"github.com/cropscope/cropscope-research-cli/internal/properties"
)

// reportRow flattens a FieldReport for spreadsheet review.
type reportRow struct {
	SourcePath         string  `csv:"source_path"`
	Rows               int     `csv:"rows"`
	Cols               int     `csv:"cols"`
	Bands              int     `csv:"bands"`
	NDVIMean           float64 `csv:"ndvi_mean"`
	ChlorophyllContent float64 `csv:"chlorophyll_content"`
	WaterStress        float64 `csv:"water_stress"`
	NutrientDeficiency float64 `csv:"nutrient_deficiency"`
	DiseaseRisk        float64 `csv:"disease_risk"`
	OverallScore       float64 `csv:"overall_score"`
	HealthStatus       string  `csv:"health_status"`
	PHLevel            float64 `csv:"ph_level"`
	OrganicMatter      float64 `csv:"organic_matter"`
	MoistureContent    float64 `csv:"moisture_content"`
	NitrogenLevel      float64 `csv:"nitrogen_level"`
	PhosphorusLevel    float64 `csv:"phosphorus_level"`
	PotassiumLevel     float64 `csv:"potassium_level"`
	PestCount          int     `csv:"pest_count"`
	Recommendations    string  `csv:"recommendations"`
	Degraded           bool    `csv:"degraded"`
	GeneratedAt        string  `csv:"generated_at"`
}

// CreateReportCSV writes one row per analyzed scene to
// data/result/<name>.csv and returns the written path.
func CreateReportCSV(reports []delivery.FieldReport, name string) (string, error) {
	resultPath := fmt.Sprintf("%s/data/result", properties.RootPath())
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %w", err)
	}
	outputPath := fmt.Sprintf("%s/%s.csv", resultPath, name)

	rows := make([]reportRow, 0, len(reports))
	for _, report := range reports {
		var ndviMean float64
		if ndvi, ok := report.Features.Index("ndvi"); ok {
			ndviMean = ndvi.Mean
		}

		recommendations := append([]string{}, report.Health.Recommendations...)
		recommendations = append(recommendations, report.Soil.Recommendations...)

		rows = append(rows, reportRow{
			SourcePath:         report.SourcePath,
			Rows:               report.Rows,
			Cols:               report.Cols,
			Bands:              report.Bands,
			NDVIMean:           ndviMean,
			ChlorophyllContent: report.Health.ChlorophyllContent,
			WaterStress:        report.Health.WaterStress,
			NutrientDeficiency: report.Health.NutrientDeficiency,
			DiseaseRisk:        report.Health.DiseaseRisk,
			OverallScore:       report.Health.OverallScore,
			HealthStatus:       report.Health.Status,
			PHLevel:            report.Soil.PHLevel,
			OrganicMatter:      report.Soil.OrganicMatter,
			MoistureContent:    report.Soil.MoistureContent,
			NitrogenLevel:      report.Soil.NitrogenLevel,
			PhosphorusLevel:    report.Soil.PhosphorusLevel,
			PotassiumLevel:     report.Soil.PotassiumLevel,
			PestCount:          len(report.Pests),
			Recommendations:    strings.Join(recommendations, "; "),
			Degraded:           report.Health.Degraded || report.Soil.Degraded,
			GeneratedAt:        report.GeneratedAt.Format("2006-01-02 15:04:05"),
		})
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	fmt.Println("CSV report created successfully at", outputPath)
	return outputPath, nil
}
