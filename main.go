package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"renewflow/config"
	"renewflow/internal/synth"
	"renewflow/logger"
	"renewflow/uploader"
	"renewflow/writer"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	startDate := flag.String("start", "", "Override generation start date (YYYY-MM-DD)")
	endDate := flag.String("end", "", "Override generation end date (YYYY-MM-DD)")

	flag.Parse()

	cfg, err := config.LoadConfig(config.ResolveConfigPath(*configPath))
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}
	if *startDate != "" {
		cfg.Generator.StartDate = *startDate
	}
	if *endDate != "" {
		cfg.Generator.EndDate = *endDate
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service":     cfg.Renewflow.Name,
		"version":     cfg.Renewflow.Version,
		"environment": config.AppEnvironment(),
	}).Info("starting renewflow")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if strings.ToLower(cfg.Logging.Level) == "report" {
		logger.StartReport(ctx, log, 30*time.Second)
	}
	if cfg.Storage.S3.Enabled {
		logger.InitCloudWatch(cfg.Storage.S3.Region, "")
	}

	dateRange, err := cfg.DateRange()
	if err != nil {
		log.WithError(err).Error("invalid generation date range")
		os.Exit(1)
	}
	catalog := cfg.Catalog()

	gen, err := synth.NewGenerator(dateRange, catalog)
	if err != nil {
		log.WithError(err).Error("failed to create generator")
		os.Exit(1)
	}
	gen.SetQualityRates(cfg.Generator.MissingRate, cfg.Generator.OutlierRate)

	log.WithComponent("main").WithFields(logger.Fields{
		"start_date": cfg.Generator.StartDate,
		"end_date":   cfg.Generator.EndDate,
		"days":       dateRange.Len(),
		"sites":      len(catalog),
	}).Info("generating synthetic production dataset")

	started := time.Now()
	ds, err := gen.Generate()
	if err != nil {
		log.WithError(err).Error("dataset generation failed")
		os.Exit(1)
	}
	logger.RecordGenerated(ds.Len())

	summary := synth.Summarize(ds)
	log.WithComponent("main").WithFields(logger.Fields{
		"records":        summary.TotalRecords,
		"total_energy":   summary.Energy.Total,
		"total_revenue":  summary.Revenue.Total,
		"missing_cells":  summary.DataQuality.TotalMissing(),
		"generation_sec": time.Since(started).Seconds(),
	}).Info("dataset generated")

	w := writer.NewArtifactWriter(cfg)

	csvPath, err := w.WriteCSV(ds)
	if err != nil {
		log.WithError(err).Error("failed to write csv artifact")
		os.Exit(1)
	}

	summaryPath, err := w.WriteSummary(summary, csvPath)
	if err != nil {
		log.WithError(err).Error("failed to write summary artifact")
		os.Exit(1)
	}

	artifacts := []string{csvPath, summaryPath}
	if cfg.Writer.Formats.Parquet.Enabled {
		parquetPath, err := w.WriteParquet(ds, csvPath)
		if err != nil {
			log.WithError(err).Error("failed to write parquet artifact")
			os.Exit(1)
		}
		artifacts = append(artifacts, parquetPath)
	}

	if cfg.Storage.S3.Enabled {
		up, err := uploader.New(ctx, cfg)
		if err != nil {
			log.WithError(err).Error("failed to create data lake uploader")
			os.Exit(1)
		}
		result, err := up.UploadArtifacts(ctx, dateRange.Start, artifacts)
		if err != nil {
			log.WithError(err).Error("data lake upload failed")
			os.Exit(1)
		}
		log.WithComponent("main").WithFields(logger.Fields{
			"bucket": result.Bucket,
			"folder": result.TargetFolder,
			"files":  len(result.Uploaded),
		}).Info("artifacts published to data lake")
	}

	log.Info("renewflow finished")
}
