//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for retail-datagen.
package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lcv-analytics/retail-datagen/internal/config"
	"github.com/lcv-analytics/retail-datagen/internal/datagen"
	"github.com/lcv-analytics/retail-datagen/internal/db"
	"github.com/lcv-analytics/retail-datagen/internal/logging"
	"github.com/lcv-analytics/retail-datagen/internal/seed"
	"github.com/lcv-analytics/retail-datagen/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "retail-datagen",
		Short: "Synthetic retail data generator for the LCV analytics warehouse",
		Long: `retail-datagen populates the retail analytics star schema with
synthetic test data: date, store, product and customer dimensions plus a
large sales fact table wired together with consistent foreign keys.

The run is fully determined by configuration (environment variables or a
config file); destination tables are cleared first, so re-running with the
same seed reproduces the same dataset.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE:          runSeed,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./retail-datagen.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() error {
	// Mirror the platform tooling: a local .env supplies the POSTGRES_*
	// variables during development.
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Pretty: true,
	})

	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Info().Msg("Starting synthetic data generation for the retail analytics platform")
	logging.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("database", cfg.Postgres.Database).
		Str("user", cfg.Postgres.User).
		Msg("Database config")
	logging.Info().
		Int("stores", cfg.Stores).
		Int("products", cfg.Products).
		Int("customers", cfg.Customers).
		Int("sales", cfg.Sales).
		Int("history_days", cfg.HistoryDays).
		Uint64("seed", cfg.Seed).
		Msg("Generation config")

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.ConnString())
	if err != nil {
		return err
	}
	defer db.Close(ctx, conn)

	pipeline := seed.New(conn, datagen.NewFaker(cfg.Seed), seed.Config{
		Stores:      cfg.Stores,
		Products:    cfg.Products,
		Customers:   cfg.Customers,
		Sales:       cfg.Sales,
		HistoryDays: cfg.HistoryDays,
		BatchSize:   cfg.BatchSize,
	})

	if err := pipeline.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Data generation failed")
		return err
	}

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
