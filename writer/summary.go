package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"renewflow/internal/synth"
	"renewflow/logger"
)

// WriteSummary persists the statistics summary as JSON next to the
// data artifact it describes and returns the summary path.
func (w *ArtifactWriter) WriteSummary(summary synth.Summary, dataPath string) (string, error) {
	log := w.log.WithComponent("summary_writer")

	path := strings.TrimSuffix(dataPath, ".csv") + "_summary.json"

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary file: %w", err)
	}

	logger.RecordArtifact("summary", int64(len(data)))
	log.WithFields(logger.Fields{
		"path":          path,
		"total_records": summary.TotalRecords,
	}).Info("summary written")

	return path, nil
}
