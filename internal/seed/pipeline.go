//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package seed implements the synthetic data generation pipeline for the
// retail analytics star schema. Five sequential stages populate the four
// dimension tables and the sales fact table, then query-optimization
// indexes are built on the fact table.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lcv-analytics/retail-datagen/internal/datagen"
	"github.com/lcv-analytics/retail-datagen/internal/logging"
)

// Config holds generation-scale parameters for one pipeline run.
type Config struct {
	Stores      int
	Products    int
	Customers   int
	Sales       int
	HistoryDays int
	BatchSize   int
}

// DimKeys carries the valid key ranges produced by the dimension stages.
// The fact generator samples foreign keys from these ranges; every ID in
// [1, N] for each dimension must resolve to a generated record.
type DimKeys struct {
	Stores    int
	Products  int
	Customers int
}

// Pipeline generates synthetic retail data into an existing star schema.
// It owns a single database connection for the whole run and a single
// seeded Faker threaded through every stage.
type Pipeline struct {
	conn  *pgx.Conn
	faker *datagen.Faker
	cfg   Config
}

// New creates a pipeline bound to the given connection and faker.
func New(conn *pgx.Conn, faker *datagen.Faker, cfg Config) *Pipeline {
	return &Pipeline{
		conn:  conn,
		faker: faker,
		cfg:   cfg,
	}
}

// Tables cleared at the start of each run, fact table first so dimension
// truncation never cascades into surviving fact rows.
var clearOrder = []string{
	"fact_sales",
	"dim_customer",
	"dim_store",
	"dim_product",
	"dim_date",
}

// Run executes the full pipeline: clear destination tables, generate the
// four dimensions and the sales facts in dependency order, then build
// indexes. Dimension stage failures abort the run; index failures do not.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	if err := p.clearTables(ctx); err != nil {
		return fmt.Errorf("failed to clear tables: %w", err)
	}

	today := midnightUTC(time.Now().UTC())

	if err := p.seedDates(ctx, today); err != nil {
		return fmt.Errorf("failed to generate dim_date: %w", err)
	}

	// Each dimension stage reports the key range it actually produced;
	// the fact stage samples foreign keys only from those ranges.
	var keys DimKeys
	var err error
	if keys.Stores, err = p.seedStores(ctx); err != nil {
		return fmt.Errorf("failed to generate dim_store: %w", err)
	}
	if keys.Products, err = p.seedProducts(ctx); err != nil {
		return fmt.Errorf("failed to generate dim_product: %w", err)
	}
	if keys.Customers, err = p.seedCustomers(ctx); err != nil {
		return fmt.Errorf("failed to generate dim_customer: %w", err)
	}

	if err := p.seedSales(ctx, today, keys); err != nil {
		return fmt.Errorf("failed to generate fact_sales: %w", err)
	}

	p.createIndexes(ctx)

	logging.Info().
		Dur("elapsed", time.Since(start)).
		Msg("Synthetic data generation complete")
	return nil
}

// clearTables truncates the destination tables so re-runs are idempotent.
// Truncating an already empty schema is a no-op, not an error.
func (p *Pipeline) clearTables(ctx context.Context) error {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range clearOrder {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logging.Info().Msg("Cleared existing data from all tables")
	return nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
