package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "renewflow/config"
	"renewflow/logger"
)

// Uploader pushes generated artifacts into the S3 data lake under a
// date-partitioned folder.
type Uploader struct {
	cfg    *appconfig.Config
	client *s3.Client
	log    *logger.Entry

	runID string
	now   func() time.Time
}

// UploadedFile describes one artifact that reached the bucket.
type UploadedFile struct {
	LocalPath string `json:"local_path"`
	Key       string `json:"key"`
	Size      int64  `json:"size_bytes"`
}

// Result reports which artifacts landed and which failed.
type Result struct {
	Bucket       string         `json:"bucket"`
	TargetFolder string         `json:"target_folder"`
	Uploaded     []UploadedFile `json:"uploaded"`
	Errors       []string       `json:"errors,omitempty"`
}

// New creates an uploader from the storage configuration.
func New(ctx context.Context, cfg *appconfig.Config) (*Uploader, error) {
	if !cfg.Storage.S3.Enabled {
		return nil, fmt.Errorf("s3 storage disabled")
	}
	if cfg.Storage.S3.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Storage.S3.Region)}
	if cfg.Storage.S3.AccessKeyID != "" && cfg.Storage.S3.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.Storage.S3.AccessKeyID,
				cfg.Storage.S3.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.S3.Endpoint)
		}
		o.UsePathStyle = cfg.Storage.S3.PathStyle
	})

	return &Uploader{
		cfg:    cfg,
		client: client,
		log:    logger.GetLogger().WithComponent("uploader"),
		runID:  uuid.NewString(),
		now:    time.Now,
	}, nil
}

// FolderKey returns the date-partitioned prefix for an upload batch,
// e.g. renewable_energy/2024/03/17.
func FolderKey(category string, t time.Time) string {
	return path.Join(category, t.Format("2006"), t.Format("01"), t.Format("02"))
}

// UploadArtifacts uploads the given local files, writes a metadata.json
// describing the batch, and verifies every key landed in the bucket.
// The folder partition is taken from dataDate, falling back to the
// upload time when no dataset date is available.
func (u *Uploader) UploadArtifacts(ctx context.Context, dataDate time.Time, paths []string) (*Result, error) {
	start := u.now()
	partition := dataDate
	if partition.IsZero() {
		partition = start
	}
	folder := FolderKey(u.cfg.Storage.S3.Category, partition.UTC())
	result := &Result{
		Bucket:       u.cfg.Storage.S3.Bucket,
		TargetFolder: folder,
	}

	log := u.log.WithFields(logger.Fields{
		"bucket": result.Bucket,
		"folder": folder,
		"run_id": u.runID,
	})
	log.WithFields(logger.Fields{"file_count": len(paths)}).Info("starting data lake upload")

	for _, p := range paths {
		uploaded, err := u.uploadFile(ctx, folder, p)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p, err))
			log.WithError(err).WithFields(logger.Fields{"path": p}).Error("artifact upload failed")
			continue
		}
		result.Uploaded = append(result.Uploaded, uploaded)
		logger.RecordUpload()
	}

	if err := u.writeBatchMetadata(ctx, folder, result, start); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("metadata.json: %v", err))
		log.WithError(err).Error("batch metadata upload failed")
	}

	if err := u.verify(ctx, result); err != nil {
		return result, err
	}

	log.WithFields(logger.Fields{
		"uploaded":    len(result.Uploaded),
		"failed":      len(result.Errors),
		"duration_ms": u.now().Sub(start).Milliseconds(),
	}).Info("data lake upload finished")

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("%d of %d uploads failed", len(result.Errors), len(paths))
	}
	return result, nil
}

func (u *Uploader) uploadFile(ctx context.Context, folder, localPath string) (UploadedFile, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("read artifact: %w", err)
	}

	filename := filepath.Base(localPath)
	key := path.Join(folder, filename)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Storage.S3.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(filename)),
		Metadata: map[string]string{
			"source":            "renewflow-generator",
			"upload-time":       u.now().UTC().Format(time.RFC3339),
			"file-type":         strings.TrimPrefix(filepath.Ext(filename), "."),
			"category":          u.cfg.Storage.S3.Category,
			"run-id":            u.runID,
			"renewflow-version": u.cfg.Renewflow.Version,
		},
	}

	putCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if _, err := u.client.PutObject(putCtx, input); err != nil {
		return UploadedFile{}, fmt.Errorf("upload artifact: %w", err)
	}

	u.log.WithFields(logger.Fields{
		"key":       key,
		"file_size": len(data),
	}).Info("artifact uploaded")

	return UploadedFile{LocalPath: localPath, Key: key, Size: int64(len(data))}, nil
}

// writeBatchMetadata uploads metadata.json summarising the batch so
// downstream consumers can discover what a folder contains.
func (u *Uploader) writeBatchMetadata(ctx context.Context, folder string, result *Result, start time.Time) error {
	meta := struct {
		RunID      string         `json:"run_id"`
		Source     string         `json:"source"`
		Category   string         `json:"category"`
		UploadTime string         `json:"upload_time"`
		Files      []UploadedFile `json:"files"`
	}{
		RunID:      u.runID,
		Source:     "renewflow-generator",
		Category:   u.cfg.Storage.S3.Category,
		UploadTime: start.UTC().Format(time.RFC3339),
		Files:      result.Uploaded,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch metadata: %w", err)
	}

	key := path.Join(folder, "metadata.json")
	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Storage.S3.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}

	putCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if _, err := u.client.PutObject(putCtx, input); err != nil {
		return fmt.Errorf("upload batch metadata: %w", err)
	}
	return nil
}

// verify confirms every uploaded key is retrievable from the bucket.
func (u *Uploader) verify(ctx context.Context, result *Result) error {
	for _, f := range result.Uploaded {
		headCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		_, err := u.client.HeadObject(headCtx, &s3.HeadObjectInput{
			Bucket: aws.String(u.cfg.Storage.S3.Bucket),
			Key:    aws.String(f.Key),
		})
		cancel()
		if err != nil {
			return fmt.Errorf("verify uploaded object %s: %w", f.Key, err)
		}
	}
	return nil
}

func contentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".parquet":
		return "application/octet-stream"
	default:
		return "application/octet-stream"
	}
}
