//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package db provides database connection management for retail-datagen.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lcv-analytics/retail-datagen/internal/logging"
)

// Connect establishes a single connection to the PostgreSQL database.
// The pipeline is strictly sequential, so one connection serves the whole
// run; the caller owns the connection and must close it on all paths.
func Connect(ctx context.Context, connString string) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	logging.Debug().
		Str("host", config.Host).
		Uint16("port", config.Port).
		Str("database", config.Database).
		Msg("Connecting to database")

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Verify connection
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.Host).
		Str("database", config.Database).
		Msg("Connected to database")

	return conn, nil
}

// Close releases the connection, logging rather than propagating close
// failures so it is safe to defer on both success and error paths.
func Close(ctx context.Context, conn *pgx.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection")
		return
	}
	logging.Info().Msg("Disconnected from database")
}
