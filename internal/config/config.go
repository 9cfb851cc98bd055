// Package config loads converter configuration from YAML files with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docx2jats/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults.
const (
	DefaultAddr           = ":5001"
	DefaultMaxUploadBytes = 50 << 20 // 50 MiB
	DefaultPandocTimeout  = 2 * time.Minute
	DefaultLogLevel       = "info"
)

// Config holds all configuration for the converter.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Pandoc  PandocConfig  `yaml:"pandoc"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines HTTP transport options.
type ServerConfig struct {
	Addr           string `yaml:"addr"`           // Listen address (default ":5001")
	MaxUploadBytes int64  `yaml:"maxUploadBytes"` // Upload size cap (default 50 MiB)
}

// PandocConfig defines conversion engine options.
type PandocConfig struct {
	Binary  string        `yaml:"binary"`  // Binary name or path (default "pandoc")
	Timeout time.Duration `yaml:"timeout"` // Per-invocation timeout
}

// LoggingConfig defines logging options.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           DefaultAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Pandoc: PandocConfig{
			Binary:  "pandoc",
			Timeout: DefaultPandocTimeout,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their defaults.
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// ApplyEnv overrides config fields from DOCX2JATS_* environment variables.
// Recognized: DOCX2JATS_ADDR, DOCX2JATS_MAX_UPLOAD_BYTES,
// DOCX2JATS_PANDOC_BIN, DOCX2JATS_PANDOC_TIMEOUT, DOCX2JATS_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DOCX2JATS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DOCX2JATS_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: DOCX2JATS_MAX_UPLOAD_BYTES=%q", ErrInvalidValue, v)
		}
		c.Server.MaxUploadBytes = n
	}
	if v := os.Getenv("DOCX2JATS_PANDOC_BIN"); v != "" {
		c.Pandoc.Binary = v
	}
	if v := os.Getenv("DOCX2JATS_PANDOC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: DOCX2JATS_PANDOC_TIMEOUT=%q", ErrInvalidValue, v)
		}
		c.Pandoc.Timeout = d
	}
	if v := os.Getenv("DOCX2JATS_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-docx2jats/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-docx2jats", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
