package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the server's environment-driven settings.
type Config struct {
	Addr          string `mapstructure:"ADDR"`
	Env           string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	ModelPath     string `mapstructure:"MODEL_PATH"`
	ColumnsPath   string `mapstructure:"COLUMNS_PATH"`
	DirectoryPath string `mapstructure:"DIRECTORY_PATH"`
	DirectoryDSN  string `mapstructure:"DIRECTORY_DSN"`
}

// Load reads configuration from the environment, with an optional .env
// file for development.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	// An explicitly empty var must shadow the default so required-field
	// validation can catch it.
	v.AllowEmptyEnv(true)

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MODEL_PATH", "artifacts/call_forecasting_model.json")
	v.SetDefault("COLUMNS_PATH", "artifacts/model_feature_columns.json")
	v.SetDefault("DIRECTORY_PATH", "artifacts/hospital_directory.csv")

	// Bind env vars explicitly so Unmarshal picks them up.
	v.BindEnv("ADDR")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("MODEL_PATH")
	v.BindEnv("COLUMNS_PATH")
	v.BindEnv("DIRECTORY_PATH")
	v.BindEnv("DIRECTORY_DSN")

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.ModelPath == "" || cfg.ColumnsPath == "" {
		return nil, fmt.Errorf("MODEL_PATH and COLUMNS_PATH are required")
	}
	if cfg.DirectoryPath == "" && cfg.DirectoryDSN == "" {
		return nil, fmt.Errorf("one of DIRECTORY_PATH or DIRECTORY_DSN is required")
	}

	return cfg, nil
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
