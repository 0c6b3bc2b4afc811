package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Fetcher  FetcherConfig  `mapstructure:"fetcher"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// FetcherConfig selects the image source and bounds the gallery fetcher.
type FetcherConfig struct {
	Source      string        `mapstructure:"source"` // dogceo or localdir
	BaseURL     string        `mapstructure:"base_url"`
	LocalPath   string        `mapstructure:"local_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	MaxBatch    int           `mapstructure:"max_batch"`
	Concurrency int           `mapstructure:"concurrency"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite or postgres
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path
}

// StorageConfig configures the S3-compatible bucket used by the archive.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // r2, s3, s3compatible; empty auto-detects
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

type ArchiveConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("fetcher.source", "dogceo")
	v.SetDefault("fetcher.base_url", "https://dog.ceo/api/breeds/image/random")
	v.SetDefault("fetcher.local_path", "./data/images")
	v.SetDefault("fetcher.timeout", 15*time.Second)
	v.SetDefault("fetcher.user_agent", "dogo/1.0")
	v.SetDefault("fetcher.max_batch", 50)
	v.SetDefault("fetcher.concurrency", 8)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/dogo.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "dogo")
	v.SetDefault("archive.enabled", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for endpoints and secrets
	_ = v.BindEnv("fetcher.base_url", "DOGO_BASE_URL")
	_ = v.BindEnv("fetcher.source", "DOGO_SOURCE")
	_ = v.BindEnv("database.driver", "DB_DRIVER")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("storage.endpoint", "S3_ENDPOINT")
	_ = v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	_ = v.BindEnv("storage.secret_key", "S3_SECRET_KEY")
	_ = v.BindEnv("storage.bucket", "S3_BUCKET")
	_ = v.BindEnv("storage.public_url", "S3_PUBLIC_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the fetcher cannot run without.
func (c *Config) Validate() error {
	switch c.Fetcher.Source {
	case "dogceo":
		if c.Fetcher.BaseURL == "" {
			return fmt.Errorf("fetcher: base_url is required for the dogceo source")
		}
	case "localdir":
		if c.Fetcher.LocalPath == "" {
			return fmt.Errorf("fetcher: local_path is required for the localdir source")
		}
	default:
		return fmt.Errorf("fetcher: unknown source %q", c.Fetcher.Source)
	}
	if c.Fetcher.MaxBatch < 1 {
		return fmt.Errorf("fetcher: max_batch must be positive, got %d", c.Fetcher.MaxBatch)
	}
	if c.Fetcher.Concurrency < 0 {
		return fmt.Errorf("fetcher: concurrency must not be negative, got %d", c.Fetcher.Concurrency)
	}
	if c.Archive.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("archive: storage.bucket is required when the archive is enabled")
	}
	return nil
}
