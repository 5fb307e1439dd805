// Package config resolves where task lists live and how they are written.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// TASKTIMER_* environment variables (which a .env file may provide), then
// command-line flags applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tasktimer/errs"
	"tasktimer/storage"
)

// Environment variables read by Load.
const (
	EnvConfig   = "TASKTIMER_CONFIG"
	EnvDataDir  = "TASKTIMER_DATA_DIR"
	EnvFormat   = "TASKTIMER_FORMAT"
	EnvLock     = "TASKTIMER_LOCK"
	EnvLogLevel = "TASKTIMER_LOG_LEVEL"
)

// Config is the resolved configuration.
type Config struct {
	// DataDir holds one file per task type.
	DataDir string `yaml:"data_dir"`
	// Format is json, yaml or toml.
	Format string `yaml:"format"`
	// Lock guards each load-mutate-save cycle with a lock file.
	Lock bool `yaml:"lock"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration. Data files sit next to the
// executable, as they always have.
func Default() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		Format:   string(storage.FormatJSON),
		Lock:     true,
		LogLevel: "warn",
	}
}

func defaultDataDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tasktimer")
	}
	return "."
}

// DefaultPath returns the config file looked up when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tasktimer", "config.yaml")
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is an explicit config file; it must exist when set.
	Path string
	// EnvFiles are dotenv files loaded before the environment is read.
	// Missing files are skipped. Nil means ".env".
	EnvFiles []string
}

// Load builds the configuration from defaults, file and environment.
func Load(opts LoadOptions) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if p := os.Getenv(EnvConfig); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath()
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, errs.Wrap(errs.KindConfig, err, "failed to load config %s", path)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles never overrides variables already set in the process.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errs.Wrap(errs.KindConfig, err, "failed to load env file %s", f)
		}
		slog.Debug("Loaded environment file", "path", f)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if c.DataDir != "" && !filepath.IsAbs(c.DataDir) {
		c.DataDir = filepath.Join(filepath.Dir(path), c.DataDir)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLock); v != "" {
		lock, err := strconv.ParseBool(v)
		if err != nil {
			return errs.Wrap(errs.KindConfig, err, "invalid %s value %q", EnvLock, v)
		}
		c.Lock = lock
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errs.New(errs.KindConfig, "data_dir must not be empty")
	}
	if _, err := storage.ParseFormat(c.Format); err != nil {
		return errs.Wrap(errs.KindConfig, err, "invalid format")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return errs.Wrap(errs.KindConfig, err, "invalid log_level")
	}
	return nil
}

// StoreFormat returns the validated storage format.
func (c *Config) StoreFormat() storage.Format {
	f, err := storage.ParseFormat(c.Format)
	if err != nil {
		return storage.FormatJSON
	}
	return f
}

// StorePath returns the data file of a task type.
func (c *Config) StorePath(tt storage.TaskType) string {
	return filepath.Join(c.DataDir, string(tt)+"."+string(c.StoreFormat()))
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, err
	}
	return l, nil
}
