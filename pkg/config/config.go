package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database.busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database.connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database.connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database.debug"`
	DatabaseFilePath          string        `koanf:"database.file_path"`
	DatabaseMaxRetries        int           `koanf:"database.max_retries"`
	Environment               string        `koanf:"environment"`
	Hostname                  string        `koanf:"-"`
	OpenLibraryBaseURL        string        `koanf:"openlibrary.base_url"`
	OpenLibraryCoverBaseURL   string        `koanf:"openlibrary.cover_base_url"`
	OpenLibraryTimeout        time.Duration `koanf:"openlibrary.timeout"`
	ServerHost                string        `koanf:"server.host"`
	ServerPort                int           `koanf:"server.port"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
	envPrefix      = "TOSHO_"
)

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		Hostname:                  hostname,
		OpenLibraryBaseURL:        "https://openlibrary.org",
		OpenLibraryCoverBaseURL:   "https://covers.openlibrary.org",
		OpenLibraryTimeout:        5 * time.Second,
		ServerPort:                5002,
	}

	environment := os.Getenv(environmentENV)
	switch environment {
	case "development", "":
		cfg.Environment = "development"
		loadDevelopmentConfig(cfg)
	case "test":
		cfg.Environment = "test"
		loadTestConfig(cfg)
	case "production":
		cfg.Environment = "production"
		loadProductionConfig(cfg)
	}

	if err := loadOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadOverrides layers an optional YAML config file and TOSHO_* environment
// variables on top of the environment defaults. Keys absent from both
// sources leave the defaults untouched.
func loadOverrides(cfg *Config) error {
	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "failed to load config file: %s", configFile)
		}
	}

	// TOSHO_SERVER__PORT=8080 becomes server.port.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	err = k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true})
	return errors.WithStack(err)
}
