package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	BookAPI  BookAPIConfig  `mapstructure:"book_api"`
}

type StorageConfig struct {
	// Backend selects where the journal and books live.
	Backend     string `mapstructure:"backend" validate:"oneof=yaml mysql"`
	JournalFile string `mapstructure:"journal_file" validate:"required"`
	LegacyFile  string `mapstructure:"legacy_file" validate:"required"`
	BooksFile   string `mapstructure:"books_file" validate:"required"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

type BookAPIConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries     int    `mapstructure:"max_retries" validate:"gte=0"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/puka")
	}

	v.SetDefault("storage.backend", "yaml")
	v.SetDefault("storage.journal_file", filepath.Join("data", "journal.yml"))
	v.SetDefault("storage.legacy_file", filepath.Join("data", "streaks.yml"))
	v.SetDefault("storage.books_file", filepath.Join("data", "books.yml"))
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("book_api.timeout_seconds", 10)
	v.SetDefault("book_api.max_retries", 3)

	// Secrets come from the environment only, never from the config file.
	if err := v.BindEnv("database.password", "PUKA_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind PUKA_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("book_api.token", "PUKA_BOOK_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind PUKA_BOOK_API_TOKEN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
