package logger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

type artifactStat struct {
	count int64
	bytes int64
}

var (
	warnCounts  sync.Map // map[string]*int64, keyed by component
	errorCounts sync.Map // map[string]*int64, keyed by component
	recordsOut  int64
	uploads     int64
	artifacts   sync.Map // map[string]*artifactStat, keyed by artifact kind
)

func counter(m *sync.Map, key string) *int64 {
	v, _ := m.LoadOrStore(key, new(int64))
	return v.(*int64)
}

func recordWarn(component string) {
	atomic.AddInt64(counter(&warnCounts, component), 1)
}

func recordError(component string) {
	atomic.AddInt64(counter(&errorCounts, component), 1)
}

// RecordGenerated accumulates the number of dataset rows produced.
func RecordGenerated(rows int) {
	atomic.AddInt64(&recordsOut, int64(rows))
}

// RecordUpload counts a completed artifact upload.
func RecordUpload() {
	atomic.AddInt64(&uploads, 1)
}

// RecordArtifact tracks a written artifact by kind (csv, parquet,
// summary) and size.
func RecordArtifact(kind string, size int64) {
	v, _ := artifacts.LoadOrStore(kind, &artifactStat{})
	as := v.(*artifactStat)
	atomic.AddInt64(&as.count, 1)
	atomic.AddInt64(&as.bytes, size)
}

func startReport(ctx context.Context, log *Log, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				logReport(ctx, log)
			}
		}
	}()
}

// StartReport begins periodic logging of system and artifact statistics.
// It exposes the internal startReport function for use by other packages.
func StartReport(ctx context.Context, log *Log, interval time.Duration) {
	startReport(ctx, log, interval)
}

func logReport(ctx context.Context, log *Log) {
	cpuPercent, _ := cpu.Percent(0, false)
	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	cpuPct := 0.0
	if len(cpuPercent) > 0 {
		cpuPct = cpuPercent[0]
	}

	sumCounts := func(m *sync.Map) (int64, map[string]int64) {
		total := int64(0)
		byComponent := map[string]int64{}
		m.Range(func(k, v any) bool {
			n := atomic.LoadInt64(v.(*int64))
			byComponent[k.(string)] = n
			total += n
			return true
		})
		return total, byComponent
	}
	totalErrors, errorData := sumCounts(&errorCounts)
	totalWarns, warnData := sumCounts(&warnCounts)

	artifactData := map[string]map[string]int64{}
	artifacts.Range(func(k, v any) bool {
		as := v.(*artifactStat)
		artifactData[k.(string)] = map[string]int64{
			"count": atomic.LoadInt64(&as.count),
			"bytes": atomic.LoadInt64(&as.bytes),
		}
		return true
	})

	fields := Fields{
		"errors":            totalErrors,
		"errors_by_comp":    errorData,
		"warns":             totalWarns,
		"warns_by_comp":     warnData,
		"records_generated": atomic.LoadInt64(&recordsOut),
		"uploads":           atomic.LoadInt64(&uploads),
		"artifacts":         artifactData,
		"goroutines":        runtime.NumGoroutine(),
		"cpu_percent":       cpuPct,
		"memory_mb":         int64(memStats.Used) / 1024 / 1024,
		"disk_mb":           int64(diskStats.Used) / 1024 / 1024,
	}

	log.WithComponent("report").WithFields(fields).Info("runtime report")

	var data []cwtypes.MetricDatum
	data = append(data,
		cwtypes.MetricDatum{MetricName: aws.String("CPUPercent"), Unit: cwtypes.StandardUnitPercent, Value: aws.Float64(cpuPct)},
		cwtypes.MetricDatum{MetricName: aws.String("MemoryMB"), Unit: cwtypes.StandardUnitMegabytes, Value: aws.Float64(float64(memStats.Used) / 1024 / 1024)},
		cwtypes.MetricDatum{MetricName: aws.String("Errors"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(totalErrors))},
		cwtypes.MetricDatum{MetricName: aws.String("Warns"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(totalWarns))},
		cwtypes.MetricDatum{MetricName: aws.String("RecordsGenerated"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&recordsOut)))},
		cwtypes.MetricDatum{MetricName: aws.String("Uploads"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&uploads)))},
	)

	for kind, stats := range artifactData {
		data = append(data,
			cwtypes.MetricDatum{
				MetricName: aws.String("ArtifactCount"),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{{Name: aws.String("Kind"), Value: aws.String(kind)}},
				Value:      aws.Float64(float64(stats["count"])),
			},
			cwtypes.MetricDatum{
				MetricName: aws.String("ArtifactBytes"),
				Unit:       cwtypes.StandardUnitBytes,
				Dimensions: []cwtypes.Dimension{{Name: aws.String("Kind"), Value: aws.String(kind)}},
				Value:      aws.Float64(float64(stats["bytes"])),
			},
		)
	}

	publishMetrics(ctx, data)
}
