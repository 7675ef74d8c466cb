package writer

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	pqwriter "github.com/xitongsys/parquet-go/writer"

	"renewflow/internal/model"
	"renewflow/logger"
)

// ParquetRecord represents the structure of our parquet file. Nullable
// columns use optional fields so missing cells survive the format
// round trip instead of degrading to zeros.
type ParquetRecord struct {
	Date          string   `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	SiteID        string   `parquet:"name=site_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	SiteName      string   `parquet:"name=site_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	SiteType      string   `parquet:"name=site_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	EnergyKWh     *float64 `parquet:"name=energy_produced_kwh, type=DOUBLE, repetitiontype=OPTIONAL"`
	SpotPrice     float64  `parquet:"name=spot_market_price, type=DOUBLE"`
	Revenue       *float64 `parquet:"name=revenue, type=DOUBLE, repetitiontype=OPTIONAL"`
	Condition     string   `parquet:"name=weather_condition, type=BYTE_ARRAY, convertedtype=UTF8"`
	DowntimeHours float64  `parquet:"name=downtime_hours, type=DOUBLE"`
	TemperatureC  *float64 `parquet:"name=temperature_c, type=DOUBLE, repetitiontype=OPTIONAL"`
	WindSpeedMPS  *float64 `parquet:"name=wind_speed_mps, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// memoryFileWriter implements the ParquetFile interface for in-memory
// writing.
type memoryFileWriter struct {
	buffer *bytes.Buffer
}

func newMemoryFileWriter() *memoryFileWriter {
	return &memoryFileWriter{
		buffer: &bytes.Buffer{},
	}
}

func (mfw *memoryFileWriter) Create(name string) (source.ParquetFile, error) {
	return mfw, nil
}

func (mfw *memoryFileWriter) Open(name string) (source.ParquetFile, error) {
	return mfw, nil
}

func (mfw *memoryFileWriter) Seek(offset int64, whence int) (int64, error) {
	// Writing is append-only; seeking is not needed.
	return int64(mfw.buffer.Len()), nil
}

func (mfw *memoryFileWriter) Read(b []byte) (int, error) {
	return mfw.buffer.Read(b)
}

func (mfw *memoryFileWriter) Write(b []byte) (int, error) {
	return mfw.buffer.Write(b)
}

func (mfw *memoryFileWriter) Close() error {
	return nil
}

func (mfw *memoryFileWriter) Bytes() []byte {
	return mfw.buffer.Bytes()
}

// WriteParquet persists the dataset as a parquet file alongside the
// CSV artifact and returns its path. It is a no-op unless the parquet
// format is enabled in configuration.
func (w *ArtifactWriter) WriteParquet(ds *model.Dataset, csvPath string) (string, error) {
	if !w.config.Writer.Formats.Parquet.Enabled {
		return "", nil
	}
	log := w.log.WithComponent("parquet_writer")

	data, err := w.createParquetFile(ds)
	if err != nil {
		return "", err
	}

	path := strings.TrimSuffix(csvPath, ".csv") + ".parquet"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write parquet file: %w", err)
	}

	logger.RecordArtifact("parquet", int64(len(data)))
	log.WithFields(logger.Fields{
		"path":         path,
		"file_size":    len(data),
		"record_count": ds.Len(),
		"compression":  w.config.Writer.Formats.Parquet.Compression,
	}).Info("parquet dataset written")

	return path, nil
}

func (w *ArtifactWriter) createParquetFile(ds *model.Dataset) ([]byte, error) {
	fw := newMemoryFileWriter()

	pw, err := pqwriter.NewParquetWriter(fw, new(ParquetRecord), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	switch w.config.Writer.Formats.Parquet.Compression {
	case "snappy":
		pw.CompressionType = parquet.CompressionCodec_SNAPPY
	case "gzip":
		pw.CompressionType = parquet.CompressionCodec_GZIP
	case "lzo":
		pw.CompressionType = parquet.CompressionCodec_LZO
	default:
		pw.CompressionType = parquet.CompressionCodec_UNCOMPRESSED
	}

	for _, r := range ds.Records {
		record := ParquetRecord{
			Date:          r.Date.Format("2006-01-02"),
			SiteID:        r.SiteID,
			SiteName:      r.SiteName,
			SiteType:      string(r.SiteType),
			EnergyKWh:     optional(r.EnergyKWh),
			SpotPrice:     r.SpotPrice,
			Revenue:       optional(r.Revenue),
			Condition:     string(r.Condition),
			DowntimeHours: r.DowntimeHours,
			TemperatureC:  optional(r.TemperatureC),
			WindSpeedMPS:  optional(r.WindSpeedMPS),
		}
		if err := pw.Write(record); err != nil {
			pw.WriteStop()
			return nil, fmt.Errorf("failed to write parquet record: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("failed to finalize parquet writing: %w", err)
	}

	return fw.Bytes(), nil
}

// optional converts a NaN-marked cell to a parquet optional value.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
