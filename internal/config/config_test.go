package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.Server.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if cfg.Pandoc.Binary != "pandoc" {
		t.Errorf("Binary = %q, want pandoc", cfg.Pandoc.Binary)
	}
	if cfg.Pandoc.Timeout != DefaultPandocTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Pandoc.Timeout, DefaultPandocTimeout)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
pandoc:
  binary: /opt/pandoc/bin/pandoc
  timeout: 30s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Pandoc.Binary != "/opt/pandoc/bin/pandoc" {
		t.Errorf("Binary = %q", cfg.Pandoc.Binary)
	}
	if cfg.Pandoc.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Pandoc.Timeout)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Server.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.Server.MaxUploadBytes)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Level = %q, want default", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name       string
		nameOrPath string
		wantErr    error
	}{
		{name: "empty name", nameOrPath: "", wantErr: ErrEmptyConfigName},
		{name: "missing path", nameOrPath: "/no/such/dir/config.yaml", wantErr: ErrConfigNotFound},
		{name: "unresolvable name", nameOrPath: "definitely-not-a-real-config-name", wantErr: ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.nameOrPath)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load(%q) error = %v, want %v", tt.nameOrPath, err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
server:
  adress: ":8080"
`)

	_, err := Load(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("Load() with misspelled key error = %v, want ErrConfigParse", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DOCX2JATS_ADDR", ":9999")
	t.Setenv("DOCX2JATS_MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("DOCX2JATS_PANDOC_BIN", "pandoc-3.1")
	t.Setenv("DOCX2JATS_PANDOC_TIMEOUT", "90s")
	t.Setenv("DOCX2JATS_LOG_LEVEL", "DEBUG")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d, want 1048576", cfg.Server.MaxUploadBytes)
	}
	if cfg.Pandoc.Binary != "pandoc-3.1" {
		t.Errorf("Binary = %q, want pandoc-3.1", cfg.Pandoc.Binary)
	}
	if cfg.Pandoc.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Pandoc.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug (lowered)", cfg.Logging.Level)
	}
}

func TestApplyEnvUnsetLeavesDefaults(t *testing.T) {
	for _, key := range []string{
		"DOCX2JATS_ADDR",
		"DOCX2JATS_MAX_UPLOAD_BYTES",
		"DOCX2JATS_PANDOC_BIN",
		"DOCX2JATS_PANDOC_TIMEOUT",
		"DOCX2JATS_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("config changed with no env set: %+v", cfg)
	}
}

func TestApplyEnvInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric upload size", key: "DOCX2JATS_MAX_UPLOAD_BYTES", value: "lots"},
		{name: "negative upload size", key: "DOCX2JATS_MAX_UPLOAD_BYTES", value: "-1"},
		{name: "malformed timeout", key: "DOCX2JATS_PANDOC_TIMEOUT", value: "soon"},
		{name: "zero timeout", key: "DOCX2JATS_PANDOC_TIMEOUT", value: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg := Default()
			if err := cfg.ApplyEnv(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ApplyEnv() error = %v, want ErrInvalidValue", err)
			}
		})
	}
}
