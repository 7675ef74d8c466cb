package writer

import (
	"math"
	"strconv"
	"time"

	appconfig "renewflow/config"
	"renewflow/logger"
)

// ArtifactWriter persists a generated dataset and its statistics
// summary to local files. It is a collaborator of the synthesis core:
// it consumes the finished table and never mutates it.
type ArtifactWriter struct {
	config *appconfig.Config
	log    *logger.Log

	// now is swappable for deterministic filenames in tests.
	now func() time.Time
}

func NewArtifactWriter(cfg *appconfig.Config) *ArtifactWriter {
	return &ArtifactWriter{
		config: cfg,
		log:    logger.GetLogger(),
		now:    time.Now,
	}
}

// formatCell renders one nullable numeric cell for text output; a
// missing value becomes an empty field.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
