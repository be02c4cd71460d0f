package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "CHALLANCONV_API_KEY", "WORKER_COUNT", "FILE_WORKERS", "MAX_QUEUE_SIZE",
		"MAX_UPLOAD_BYTES", "JOB_TTL", "PDF_FALLBACK_PDFTOTEXT", "LOG_LEVEL", "LOG_FORMAT",
		"CHALLANCONV_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "challanconv.toml")
	content := `
port = "9000"
api_key = "from-file"
file_workers = 8
job_ttl = "30m"
pdf_fallback_pdftotext = false

[log]
level = "debug"
format = "text"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHALLANCONV_API_KEY", "from-env")
	t.Setenv("WORKER_COUNT", "6")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.APIKey)
	}
	if cfg.WorkerCount != 6 || cfg.FileWorkers != 8 {
		t.Errorf("expected workers 6/8, got %d/%d", cfg.WorkerCount, cfg.FileWorkers)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %v", cfg.JobTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled by file")
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "text" {
		t.Errorf("expected debug/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte(`max_queue_size = 7`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHALLANCONV_CONFIG", path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxQueueSize != 7 {
		t.Errorf("expected queue size 7, got %d", cfg.MaxQueueSize)
	}
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte(`job_ttl = "soon"`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid job_ttl")
	}
}

func TestLoadClampsNonPositive(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_COUNT", "0")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 2 || cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected defaults restored, got %d/%d", cfg.WorkerCount, cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad log level")
	}
	cfg = Default()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad log format")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "text"
	cfg.LogLevel = "warn"
	log := cfg.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Errorf("unexpected log output %q", out)
	}
}
