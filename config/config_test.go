package config

import (
	"os"
	"testing"

	"renewflow/internal/model"
)

// writeTempConfig creates a minimal configuration file required for LoadConfig
// and returns its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", "cfg-*.yml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

const minimalConfig = `renewflow:
  name: "TestApp"
  version: "1.0"
generator:
  start_date: "2024-01-01"
  end_date: "2024-01-31"
storage:
  s3:
    enabled: false
`

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Renewflow.Name != "TestApp" {
		t.Errorf("unexpected name: %s", cfg.Renewflow.Name)
	}
	if cfg.Generator.StartDate != "2024-01-01" {
		t.Errorf("unexpected start date: %s", cfg.Generator.StartDate)
	}
	if cfg.Generator.MissingRate != 0.02 || cfg.Generator.OutlierRate != 0.01 {
		t.Errorf("unexpected default rates: %v %v", cfg.Generator.MissingRate, cfg.Generator.OutlierRate)
	}
	if cfg.Writer.OutputDir != "output" {
		t.Errorf("unexpected output dir: %s", cfg.Writer.OutputDir)
	}
	if cfg.Storage.S3.Category != "renewable_energy" {
		t.Errorf("unexpected category: %s", cfg.Storage.S3.Category)
	}
}

func TestLoadConfigMissingName(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  version: "1.0"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestLoadConfigInvalidDateRange(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
generator:
  start_date: "2024-06-01"
  end_date: "2024-01-01"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for inverted date range")
	}
}

func TestLoadConfigInvalidRates(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
generator:
  missing_rate: 1.5
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for out-of-range missing rate")
	}
}

func TestLoadConfigS3RequiresBucket(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
storage:
  s3:
    enabled: true
    region: "us-east-1"
    access_key_id: "key"
    secret_access_key: "secret"
`)
	t.Setenv("S3_BUCKET", "")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
storage:
  s3:
    enabled: true
    bucket: "file-bucket"
    region: "file-region"
    access_key_id: "file-key"
    secret_access_key: "file-secret"
`)
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("S3_BUCKET", "env-bucket")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage.S3.AccessKeyID != "env-key" || cfg.Storage.S3.SecretAccessKey != "env-secret" {
		t.Errorf("credentials not overridden from environment")
	}
	if cfg.Storage.S3.Region != "eu-west-1" || cfg.Storage.S3.Bucket != "env-bucket" {
		t.Errorf("region or bucket not overridden from environment")
	}
}

func TestCatalogFallsBackToReference(t *testing.T) {
	path := writeTempConfig(t, minimalConfig)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	catalog := cfg.Catalog()
	if len(catalog) != len(model.ReferenceCatalog()) {
		t.Fatalf("expected reference catalog, got %d sites", len(catalog))
	}
}

func TestCatalogFromSites(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
sites:
  - id: "SOLAR100"
    name: "Test Solar"
    type: "solar"
    capacity: 25
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	catalog := cfg.Catalog()
	if len(catalog) != 1 || catalog[0].ID != "SOLAR100" || catalog[0].Type != model.SiteTypeSolar {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
}

func TestLoadConfigInvalidSiteType(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
sites:
  - id: "GEO001"
    name: "Geyser"
    type: "geothermal"
    capacity: 10
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown site type")
	}
}

func TestLoadConfigInvalidParquetCompression(t *testing.T) {
	path := writeTempConfig(t, `renewflow:
  name: "TestApp"
  version: "1.0"
writer:
  formats:
    parquet:
      enabled: true
      compression: "zstd"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unsupported compression")
	}
}

func TestIsValidS3Bucket(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"valid-bucket", true},
		{"Invalid", false},
		{"ab", false},
		{"my..bucket", false},
	}
	for _, c := range cases {
		if got := isValidS3Bucket(c.name); got != c.valid {
			t.Errorf("isValidS3Bucket(%q) = %v, want %v", c.name, got, c.valid)
		}
	}
}
