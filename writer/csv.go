package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"renewflow/internal/model"
	"renewflow/logger"
)

// WriteCSV persists the dataset as a timestamped CSV file in the
// configured output directory and returns its path. The header is
// exactly the fixed column contract.
func (w *ArtifactWriter) WriteCSV(ds *model.Dataset) (string, error) {
	log := w.log.WithComponent("csv_writer")

	outputDir := w.config.Writer.OutputDir
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("renewflow_synthetic_%s.csv", w.now().Format("20060102_150405"))
	path := filepath.Join(outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(model.Columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range ds.Records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.SiteID,
			r.SiteName,
			string(r.SiteType),
			formatCell(r.EnergyKWh),
			formatCell(r.SpotPrice),
			formatCell(r.Revenue),
			string(r.Condition),
			formatCell(r.DowntimeHours),
			formatCell(r.TemperatureC),
			formatCell(r.WindSpeedMPS),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	info, err := f.Stat()
	if err == nil {
		logger.RecordArtifact("csv", info.Size())
	}
	log.WithFields(logger.Fields{
		"path":         path,
		"record_count": ds.Len(),
	}).Info("dataset written")

	return path, nil
}
