// Package config loads tracker settings from the environment and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all tracker configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP presentation adapter.
type ServerConfig struct {
	Port               string   `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	FrontendDistPath   string   `yaml:"frontend_dist_path"`
	RateLimit          float64  `yaml:"rate_limit"` // mutating requests per second
	RateBurst          int      `yaml:"rate_burst"`
}

// StorageConfig selects and configures the persistence driver.
type StorageConfig struct {
	Driver      string   `yaml:"driver"` // memory, file, sqlite, postgres, s3
	FileDir     string   `yaml:"file_dir"`
	SQLitePath  string   `yaml:"sqlite_path"`
	PostgresDSN string   `yaml:"postgres_dsn"`
	S3          S3Config `yaml:"s3"`
}

// S3Config configures the S3-compatible storage driver.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"` // optional, for MinIO
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// ViewConfig tunes the view controller.
type ViewConfig struct {
	DetailCacheSize int `yaml:"detail_cache_size"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			RateLimit:          10,
			RateBurst:          20,
		},
		Storage: StorageConfig{
			Driver:     "sqlite",
			FileDir:    "./data",
			SQLitePath: "./sneaker_tracker.db",
			S3: S3Config{
				Region: "us-east-1",
				Prefix: "sneaker-tracker/",
			},
		},
		View: ViewConfig{
			DetailCacheSize: 64,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if any),
// then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.CORSAllowedOrigins = strings.Split(v, ",")
	}
	if v := getenv("FRONTEND_DIST_PATH"); v != "" {
		cfg.Server.FrontendDistPath = v
	}
	if v := getenv("RATE_LIMIT"); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimit = limit
		}
	}
	if v := getenv("RATE_BURST"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateBurst = burst
		}
	}
	if v := getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := getenv("DATA_DIR"); v != "" {
		cfg.Storage.FileDir = v
	}
	if v := getenv("DB_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := getenv("S3_BUCKET"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := getenv("S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := getenv("S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}
	if v := getenv("S3_PREFIX"); v != "" {
		cfg.Storage.S3.Prefix = v
	}
	if v := getenv("S3_PATH_STYLE"); v != "" {
		cfg.Storage.S3.PathStyle = strings.EqualFold(v, "true")
	}
	if v := getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.S3.AccessKeyID = v
	}
	if v := getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.S3.SecretAccessKey = v
	}
	if v := getenv("DETAIL_CACHE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			cfg.View.DetailCacheSize = size
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks settings that would otherwise fail late at startup.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "file", "sqlite", "postgres":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("rate limit and burst must not be negative")
	}
	if c.View.DetailCacheSize <= 0 {
		return fmt.Errorf("view.detail_cache_size must be positive")
	}
	return nil
}
