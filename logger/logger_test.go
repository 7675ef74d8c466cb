package logger

import (
	"os"
	"sync/atomic"
	"testing"
)

func TestWithComponent(t *testing.T) {
	log := Logger()
	entry := log.WithComponent("test")
	if v, ok := entry.Entry.Data["component"]; !ok || v != "test" {
		t.Fatalf("component field missing: %v", entry.Entry.Data)
	}
}

func TestConfigureInvalidLevel(t *testing.T) {
	// Ensure environment variables do not override the provided level
	t.Setenv("LOG_LEVEL", "")

	log := Logger()
	if err := log.Configure("invalid", "json", "stdout", 0); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestWithEnv(t *testing.T) {
	os.Setenv("FOO", "bar")
	log := Logger()
	entry := log.WithEnv("FOO")
	if v, ok := entry.Entry.Data["FOO"]; !ok || v != "bar" {
		t.Fatalf("env field not set: %v", entry.Entry.Data)
	}
}

func TestRecordArtifactCounts(t *testing.T) {
	RecordArtifact("test-kind", 128)
	RecordArtifact("test-kind", 64)
	v, ok := artifacts.Load("test-kind")
	if !ok {
		t.Fatalf("artifact kind not recorded")
	}
	stat := v.(*artifactStat)
	count := atomic.LoadInt64(&stat.count)
	size := atomic.LoadInt64(&stat.bytes)
	if count < 2 || size < 192 {
		t.Fatalf("unexpected artifact stat: count=%d bytes=%d", count, size)
	}
}
