package uploader

import (
	"context"
	"testing"
	"time"

	appconfig "renewflow/config"
)

func TestFolderKey(t *testing.T) {
	ts := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	if got := FolderKey("renewable_energy", ts); got != "renewable_energy/2024/03/07" {
		t.Fatalf("unexpected folder key: %q", got)
	}
}

func TestFolderKeyPadsMonthAndDay(t *testing.T) {
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := FolderKey("data", ts); got != "data/2025/01/02" {
		t.Fatalf("unexpected folder key: %q", got)
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"renewflow_synthetic_20240317.csv": "text/csv",
		"summary.json":                     "application/json",
		"data.parquet":                     "application/octet-stream",
		"unknown.bin":                      "application/octet-stream",
	}
	for name, want := range cases {
		if got := contentType(name); got != want {
			t.Errorf("contentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestNewRequiresEnabledStorage(t *testing.T) {
	cfg := &appconfig.Config{}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected error when storage is disabled")
	}
}

func TestNewRequiresBucket(t *testing.T) {
	cfg := &appconfig.Config{}
	cfg.Storage.S3.Enabled = true
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected error when bucket is empty")
	}
}
