package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by the service
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration values
type Config struct {
	Port          int    `mapstructure:"port"`
	Host          string `mapstructure:"host"`
	AdminAPIToken string `mapstructure:"admin_api_token"`
	DataFile      string `mapstructure:"data_file"`
	StorageDriver string `mapstructure:"storage_driver"`
	DatabaseURL   string `mapstructure:"database_url"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	GinMode       string `mapstructure:"gin_mode"`

	// TrustedProxies lists proxy addresses or CIDRs whose forwarding
	// headers are honoured. Empty means the peer address is always used.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AdminEnabled reports whether the admin routes are usable
func (c *Config) AdminEnabled() bool {
	return c.AdminAPIToken != ""
}

// LoadConfig reads configuration from a .env file, if present, and the environment
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("admin_api_token", "")
	v.SetDefault("data_file", "data/leads.json")
	v.SetDefault("storage_driver", StorageFile)
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("trusted_proxies", []string{})

	v.BindEnv("port", "PORT")
	v.BindEnv("host", "HOST")
	v.BindEnv("admin_api_token", "ADMIN_API_TOKEN")
	v.BindEnv("data_file", "DATA_FILE")
	v.BindEnv("storage_driver", "STORAGE_DRIVER")
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_format", "LOG_FORMAT")
	v.BindEnv("gin_mode", "GIN_MODE")
	v.BindEnv("trusted_proxies", "TRUSTED_PROXIES")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	switch cfg.StorageDriver {
	case StorageFile:
		if cfg.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file storage driver")
		}
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return nil
}
