package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Storage backends understood by storage.Open
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Default PR_STORAGE_PATH per backend: a database file for sqlite, a directory for file
const (
	DefaultSQLitePath = "./data/prs.db"
	DefaultFileDir    = "./data/records"
)

// Config holds application configuration.
// Values are read from PR_-prefixed environment variables, e.g. PR_USER, PR_STORAGE_PATH.
type Config struct {
	User string `envconfig:"USER" default:"default"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"sqlite"`
	StoragePath    string `envconfig:"STORAGE_PATH"` // database file for sqlite, directory for file
	StorageKey     string `envconfig:"STORAGE_KEY" default:"personalRecords"`

	// Google Sheets export
	SpreadsheetID   string `envconfig:"SPREADSHEET_ID"`
	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" default:"credentials.json"`

	// BigQuery export
	BigQueryProject string `envconfig:"BIGQUERY_PROJECT"`
	BigQueryDataset string `envconfig:"BIGQUERY_DATASET" default:"fitness"`
	BigQueryTable   string `envconfig:"BIGQUERY_TABLE" default:"personal_records"`

	// Snapshot publishing over SSH, target in user@host:path form
	PublishTarget  string `envconfig:"PUBLISH_TARGET"`
	PublishKeyFile string `envconfig:"PUBLISH_KEY_FILE" default:"deploy.pem"`
}

// SlotKey returns the storage key owning this user's personal records.
func (c *Config) SlotKey() string {
	return c.StorageKey + ":" + c.User
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PR", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	switch cfg.StorageBackend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported PR_STORAGE_BACKEND: %s", cfg.StorageBackend)
	}

	if cfg.StoragePath == "" {
		cfg.StoragePath = defaultStoragePath(cfg.StorageBackend)
	}

	if strings.TrimSpace(cfg.User) == "" {
		return nil, fmt.Errorf("PR_USER must not be blank")
	}

	log.Debug().
		Str("user", cfg.User).
		Str("storage_backend", cfg.StorageBackend).
		Str("storage_path", cfg.StoragePath).
		Str("slot_key", cfg.SlotKey()).
		Bool("sheets_configured", cfg.SpreadsheetID != "").
		Bool("bigquery_configured", cfg.BigQueryProject != "").
		Bool("publish_configured", cfg.PublishTarget != "").
		Msg("Loaded configuration")

	return &cfg, nil
}

func defaultStoragePath(backend string) string {
	switch backend {
	case BackendFile:
		return DefaultFileDir
	case BackendSQLite:
		return DefaultSQLitePath
	}
	return ""
}
