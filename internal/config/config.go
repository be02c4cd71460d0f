package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer-token checks.
	APIKey string

	// Worker pool
	WorkerCount  int
	FileWorkers  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Logging
	LogLevel  string
	LogFormat string
}

// fileConfig mirrors Config in a TOML file. Unset keys keep their defaults.
type fileConfig struct {
	Port                 *string `toml:"port"`
	APIKey               *string `toml:"api_key"`
	WorkerCount          *int    `toml:"worker_count"`
	FileWorkers          *int    `toml:"file_workers"`
	MaxQueueSize         *int    `toml:"max_queue_size"`
	MaxUploadBytes       *int64  `toml:"max_upload_bytes"`
	JobTTL               *string `toml:"job_ttl"`
	PDFFallbackPdftotext *bool   `toml:"pdf_fallback_pdftotext"`
	Log                  struct {
		Level  *string `toml:"level"`
		Format *string `toml:"format"`
	} `toml:"log"`
}

func Default() Config {
	return Config{
		Port:                 "8090",
		WorkerCount:          2,
		FileWorkers:          4,
		MaxQueueSize:         100,
		MaxUploadBytes:       52428800, // 50MB
		JobTTL:               1 * time.Hour,
		PDFFallbackPdftotext: true,
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// Load layers defaults, the optional TOML file at path (or CHALLANCONV_CONFIG)
// and environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CHALLANCONV_CONFIG")
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("CHALLANCONV_API_KEY", cfg.APIKey)
	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.FileWorkers = envInt("FILE_WORKERS", cfg.FileWorkers)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("LOG_FORMAT", cfg.LogFormat)

	def := Default()
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = def.WorkerCount
	}
	if cfg.FileWorkers <= 0 {
		cfg.FileWorkers = def.FileWorkers
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = def.MaxQueueSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = def.JobTTL
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.APIKey != nil {
		c.APIKey = *fc.APIKey
	}
	if fc.WorkerCount != nil {
		c.WorkerCount = *fc.WorkerCount
	}
	if fc.FileWorkers != nil {
		c.FileWorkers = *fc.FileWorkers
	}
	if fc.MaxQueueSize != nil {
		c.MaxQueueSize = *fc.MaxQueueSize
	}
	if fc.MaxUploadBytes != nil {
		c.MaxUploadBytes = *fc.MaxUploadBytes
	}
	if fc.JobTTL != nil {
		d, err := time.ParseDuration(*fc.JobTTL)
		if err != nil {
			return fmt.Errorf("parsing config %s: job_ttl: %w", path, err)
		}
		c.JobTTL = d
	}
	if fc.PDFFallbackPdftotext != nil {
		c.PDFFallbackPdftotext = *fc.PDFFallbackPdftotext
	}
	if fc.Log.Level != nil {
		c.LogLevel = *fc.Log.Level
	}
	if fc.Log.Format != nil {
		c.LogFormat = *fc.Log.Format
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
	return lvl, nil
}

// NewLogger builds the process logger from the logging settings.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, _ := ParseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
