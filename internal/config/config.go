// Package config centralizes how strazak reads environment variables (and
// optional .env files) and exposes them as strongly typed Go values.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// ArchiveOptions configures the optional object-storage copy of every
// downloaded export. Archiving is enabled when Endpoint and Bucket are set.
type ArchiveOptions struct {
	Endpoint  string `env:"STRAZAK_ARCHIVE_ENDPOINT"`
	AccessKey string `env:"STRAZAK_ARCHIVE_ACCESS_KEY"`
	SecretKey string `env:"STRAZAK_ARCHIVE_SECRET_KEY"`
	Bucket    string `env:"STRAZAK_ARCHIVE_BUCKET"`
	Region    string `env:"STRAZAK_ARCHIVE_REGION" envDefault:"us-east-1"`
	UseSSL    bool   `env:"STRAZAK_ARCHIVE_USE_SSL" envDefault:"false"`
	Prefix    string `env:"STRAZAK_ARCHIVE_PREFIX" envDefault:"exports"`
}

// Enabled reports whether an archive bucket is configured.
func (a ArchiveOptions) Enabled() bool {
	return a.Endpoint != "" && a.Bucket != ""
}

// Config represents runtime configuration for the client and CLI.
type Config struct {
	APIURL          string        `env:"STRAZAK_API_URL" envDefault:"http://127.0.0.1:8000"`
	StateFile       string        `env:"STRAZAK_STATE_FILE"`
	DownloadDir     string        `env:"STRAZAK_DOWNLOAD_DIR" envDefault:"."`
	PageSize        int           `env:"STRAZAK_PAGE_SIZE" envDefault:"50"`
	HTTPTimeout     time.Duration `env:"STRAZAK_HTTP_TIMEOUT" envDefault:"0s"`
	LogLevel        string        `env:"STRAZAK_LOG_LEVEL" envDefault:"warn"`
	LogFile         string        `env:"STRAZAK_LOG_FILE"`
	RequestIDHeader string        `env:"STRAZAK_REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	Desktop         bool          `env:"STRAZAK_DESKTOP" envDefault:"false"`
	Archive         ArchiveOptions
}

const (
	maxPageSize     = 1000
	defaultPageSize = 50
	stateDirName    = "strazak"
	stateFileName   = "state.json"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads the env files that exist and returns how many were loaded.
// Variables already set in the process environment win.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return 0, errors.Wrap(err, "load env files")
	}
	return len(existing), nil
}

// Load reads configuration from env files and environment variables, falling
// back to defaults. It returns (value, error) so callers decide how to fail.
func Load() (*Config, error) {
	if _, err := LoadEnv(DefaultEnvFiles); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if cfg.StateFile == "" {
		cfg.StateFile = defaultStateFile()
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaultPageSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return errors.Errorf("page size must be between 1 and %d, got %d", maxPageSize, c.PageSize)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return errors.Wrapf(err, "invalid STRAZAK_API_URL %q", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("invalid STRAZAK_API_URL %q (expected http or https)", c.APIURL)
	}
	if c.HTTPTimeout < 0 {
		return errors.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Without a home directory the state lives next to the working dir.
		return stateFileName
	}
	return filepath.Join(dir, stateDirName, stateFileName)
}
