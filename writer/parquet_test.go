package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteParquetDisabled(t *testing.T) {
	w := testWriter(t)
	path, err := w.WriteParquet(sampleDataset(), "ignored.csv")
	if err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}
	if path != "" {
		t.Fatalf("disabled writer should return no path, got %q", path)
	}
}

func TestWriteParquet(t *testing.T) {
	w := testWriter(t)
	w.config.Writer.Formats.Parquet.Enabled = true
	w.config.Writer.Formats.Parquet.Compression = "snappy"

	csvPath := filepath.Join(w.config.Writer.OutputDir, "renewflow_synthetic_20240317_103000.csv")
	path, err := w.WriteParquet(sampleDataset(), csvPath)
	if err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}
	if !strings.HasSuffix(path, "renewflow_synthetic_20240317_103000.parquet") {
		t.Fatalf("unexpected parquet path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(data) < 8 {
		t.Fatalf("parquet file too small: %d bytes", len(data))
	}
	if string(data[:4]) != "PAR1" || string(data[len(data)-4:]) != "PAR1" {
		t.Fatalf("file lacks parquet magic bytes")
	}
}

func TestCreateParquetFileOptionalCells(t *testing.T) {
	w := testWriter(t)
	w.config.Writer.Formats.Parquet.Compression = "gzip"
	data, err := w.createParquetFile(sampleDataset())
	if err != nil {
		t.Fatalf("createParquetFile failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty parquet payload")
	}
}

func TestOptional(t *testing.T) {
	ds := sampleDataset()
	present := optional(ds.Records[0].EnergyKWh)
	if present == nil || *present != ds.Records[0].EnergyKWh {
		t.Fatalf("present cell lost: %v", present)
	}
	if missing := optional(ds.Records[1].EnergyKWh); missing != nil {
		t.Fatalf("missing cell should be nil, got %v", *missing)
	}
}

func TestNewMemoryFileWriter(t *testing.T) {
	mfw := newMemoryFileWriter()
	if _, err := mfw.Write([]byte("abc")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if string(mfw.Bytes()) != "abc" {
		t.Fatalf("unexpected buffer contents: %q", mfw.Bytes())
	}
	if _, err := mfw.Create("x"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mfw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
