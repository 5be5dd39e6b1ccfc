//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for retail-datagen.
// Configuration is loaded from environment variables and an optional
// config file; environment variables take precedence over file values.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for retail-datagen.
type Config struct {
	// Postgres holds connection parameters for the destination database.
	Postgres PostgresConfig `mapstructure:"postgres"`

	// Stores is the number of store dimension records to generate.
	Stores int `mapstructure:"stores"`

	// Products is the number of product dimension records to generate.
	Products int `mapstructure:"products"`

	// Customers is the number of customer dimension records to generate.
	Customers int `mapstructure:"customers"`

	// Sales is the number of sales fact records to generate.
	Sales int `mapstructure:"sales"`

	// HistoryDays is the historical data window in days.
	HistoryDays int `mapstructure:"history_days"`

	// Seed is the random seed for reproducible generation.
	Seed uint64 `mapstructure:"seed"`

	// BatchSize is the number of fact rows committed per batch.
	BatchSize int `mapstructure:"batch_size"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFile is the local log file path ("" disables the file sink).
	LogFile string `mapstructure:"log_file"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// DefaultConfig returns a Config with default generation-scale values.
func DefaultConfig() *Config {
	return &Config{
		Postgres: PostgresConfig{
			Port: 5432,
		},
		Stores:      50,
		Products:    500,
		Customers:   10000,
		Sales:       1000000,
		HistoryDays: 730, // 2 years
		Seed:        42,
		BatchSize:   10000,
		LogLevel:    "info",
		LogFile:     "retail-datagen.log",
	}
}

// envBindings maps config keys to the environment variables the platform
// tooling exports.
var envBindings = map[string]string{
	"postgres.host":     "POSTGRES_HOST",
	"postgres.port":     "POSTGRES_PORT",
	"postgres.user":     "POSTGRES_USER",
	"postgres.password": "POSTGRES_PASSWORD",
	"postgres.database": "POSTGRES_DB",
	"stores":            "NUM_STORES",
	"products":          "NUM_PRODUCTS",
	"customers":         "NUM_CUSTOMERS",
	"sales":             "NUM_SALES",
	"history_days":      "DATE_RANGE_DAYS",
	"seed":              "RANDOM_SEED",
}

// Load reads configuration from the environment and an optional config file.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./retail-datagen.yaml
// 3. ~/.config/retail-datagen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("retail-datagen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "retail-datagen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and sane.
func (c *Config) Validate() error {
	if c.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if c.Postgres.User == "" {
		return fmt.Errorf("postgres user is required")
	}
	if c.Postgres.Database == "" {
		return fmt.Errorf("postgres database is required")
	}
	if c.Postgres.Port < 1 || c.Postgres.Port > 65535 {
		return fmt.Errorf("postgres port must be in 1-65535, got %d", c.Postgres.Port)
	}
	if c.Stores < 1 {
		return fmt.Errorf("stores must be at least 1")
	}
	if c.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if c.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Sales < 1 {
		return fmt.Errorf("sales must be at least 1")
	}
	if c.HistoryDays < 1 {
		return fmt.Errorf("history_days must be at least 1")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

// ConnString assembles a PostgreSQL connection URL from the connection
// parameters.
func (c *Config) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Postgres.Host, c.Postgres.Port),
		Path:   c.Postgres.Database,
	}
	if c.Postgres.Password != "" {
		u.User = url.UserPassword(c.Postgres.User, c.Postgres.Password)
	} else {
		u.User = url.User(c.Postgres.User)
	}
	return u.String()
}
