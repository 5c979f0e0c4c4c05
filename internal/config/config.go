package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fortress/internal/cryptox"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/services"
	"github.com/dmitrijs2005/fortress/internal/storage"
	"github.com/dmitrijs2005/fortress/internal/vault"
	"github.com/joho/godotenv"
)

const mib = 1 << 20

// Config holds runtime settings for the Fortress CLI. Sizes are in bytes.
type Config struct {
	StorageDriver string
	DatabaseDSN   string
	ExportDir     string
	MaxFileSize   int64
	QuotaBytes    int64
	KDFIterations int
	LogLevel      string
	LogFormat     string
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = storage.DriverSQLite
	c.DatabaseDSN = "fortress.db"
	c.ExportDir = "downloads"
	c.MaxFileSize = services.DefaultMaxFileSize
	c.QuotaBytes = vault.DefaultQuota
	c.KDFIterations = cryptox.DefaultIterations
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case storage.DriverSQLite, storage.DriverPostgres, storage.DriverMemory:
	default:
		return fmt.Errorf("storage driver %q: %w", c.StorageDriver, storage.ErrUnknownDriver)
	}
	if c.StorageDriver != storage.DriverMemory && c.DatabaseDSN == "" {
		return errors.New("database dsn is required")
	}
	if c.ExportDir == "" {
		return errors.New("export dir is required")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.QuotaBytes <= 0 {
		return fmt.Errorf("quota must be positive, got %d", c.QuotaBytes)
	}
	if c.KDFIterations < cryptox.DefaultIterations {
		return fmt.Errorf("kdf iterations must be at least %d, got %d", cryptox.DefaultIterations, c.KDFIterations)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log format %q: %w", c.LogFormat, logging.ErrInvalidFormat)
	}
	return nil
}

// LoggingOptions returns the logger settings held by c.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.LogLevel, JSON: c.LogFormat == logging.FormatJSON}
}

// Load builds a Config from defaults, the JSON file selected by args or the
// environment, then the flags in args.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// LoadConfig is Load over os.Args. A .env file in the working directory,
// if present, is read into the environment first, so $FORTRESS_CONFIG may
// be set there.
func LoadConfig() *Config {
	_ = godotenv.Load()
	return Load(os.Args[1:])
}
