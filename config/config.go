package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"renewflow/internal/model"
)

type Config struct {
	Renewflow RenewflowConfig `yaml:"renewflow"`
	Generator GeneratorConfig `yaml:"generator"`
	Sites     []SiteConfig    `yaml:"sites"`
	Writer    WriterConfig    `yaml:"writer"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type RenewflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type GeneratorConfig struct {
	StartDate   string  `yaml:"start_date"`
	EndDate     string  `yaml:"end_date"`
	MissingRate float64 `yaml:"missing_rate"`
	OutlierRate float64 `yaml:"outlier_rate"`
}

type SiteConfig struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Capacity float64 `yaml:"capacity"`
}

type WriterConfig struct {
	OutputDir string        `yaml:"output_dir"`
	Formats   FormatsConfig `yaml:"formats"`
}

type FormatsConfig struct {
	Parquet ParquetConfig `yaml:"parquet"`
}

type ParquetConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Compression string `yaml:"compression"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	Category        string `yaml:"category"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

const (
	defaultStartDate = "2022-01-01"
	defaultEndDate   = "2024-12-31"
	defaultOutputDir = "output"
	defaultCategory  = "renewable_energy"
)

func LoadConfig(path string) (*Config, error) {
	// Read configuration file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Generator: GeneratorConfig{
			StartDate:   defaultStartDate,
			EndDate:     defaultEndDate,
			MissingRate: 0.02,
			OutlierRate: 0.01,
		},
		Writer: WriterConfig{OutputDir: defaultOutputDir},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Writer.OutputDir == "" {
		config.Writer.OutputDir = defaultOutputDir
	}
	if config.Storage.S3.Category == "" {
		config.Storage.S3.Category = defaultCategory
	}

	// Override S3 settings from environment variables if available
	if config.Storage.S3.Enabled {
		if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
			config.Storage.S3.AccessKeyID = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
			config.Storage.S3.SecretAccessKey = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_REGION"); v != "" {
			config.Storage.S3.Region = strings.TrimSpace(v)
		}
		if v := os.Getenv("S3_BUCKET"); v != "" {
			config.Storage.S3.Bucket = strings.TrimSpace(v)
		}
	}

	config.Storage.S3.Bucket = strings.TrimSpace(config.Storage.S3.Bucket)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// DateRange builds the generation range from the configured bounds.
func (c *Config) DateRange() (model.DateRange, error) {
	return model.ParseDateRange(c.Generator.StartDate, c.Generator.EndDate)
}

// Catalog returns the configured site catalog, falling back to the
// reference six-site portfolio when the file lists no sites.
func (c *Config) Catalog() model.Catalog {
	if len(c.Sites) == 0 {
		return model.ReferenceCatalog()
	}
	catalog := make(model.Catalog, 0, len(c.Sites))
	for _, s := range c.Sites {
		catalog = append(catalog, model.Site{
			ID:       s.ID,
			Name:     s.Name,
			Type:     model.SiteType(s.Type),
			Capacity: s.Capacity,
		})
	}
	return catalog
}

func validateConfig(cfg *Config) error {
	if cfg.Renewflow.Name == "" {
		return fmt.Errorf("renewflow.name is required")
	}

	if cfg.Renewflow.Version == "" {
		return fmt.Errorf("renewflow.version is required")
	}

	if _, err := cfg.DateRange(); err != nil {
		return fmt.Errorf("generator date range: %w", err)
	}
	if cfg.Generator.MissingRate < 0 || cfg.Generator.MissingRate >= 1 {
		return fmt.Errorf("generator.missing_rate must be in [0,1)")
	}
	if cfg.Generator.OutlierRate < 0 || cfg.Generator.OutlierRate >= 1 {
		return fmt.Errorf("generator.outlier_rate must be in [0,1)")
	}

	if err := cfg.Catalog().Validate(); err != nil {
		return fmt.Errorf("sites: %w", err)
	}

	if cfg.Writer.Formats.Parquet.Enabled {
		switch cfg.Writer.Formats.Parquet.Compression {
		case "", "snappy", "gzip", "lzo":
		default:
			return fmt.Errorf("writer.formats.parquet.compression '%s' is invalid", cfg.Writer.Formats.Parquet.Compression)
		}
	}

	if cfg.Storage.S3.Enabled {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when S3 is enabled")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("storage.s3.region is required when S3 is enabled")
		}
		if cfg.Storage.S3.AccessKeyID == "" || cfg.Storage.S3.SecretAccessKey == "" {
			return fmt.Errorf("storage.s3.access_key_id and storage.s3.secret_access_key are required when S3 is enabled")
		}
		if !isValidS3Bucket(cfg.Storage.S3.Bucket) {
			return fmt.Errorf("storage.s3.bucket '%s' is invalid", cfg.Storage.S3.Bucket)
		}
	}

	return nil
}

var s3BucketRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

func isValidS3Bucket(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if strings.Contains(name, "..") || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return false
	}
	return s3BucketRegexp.MatchString(name)
}
