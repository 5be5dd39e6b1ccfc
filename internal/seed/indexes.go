//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lcv-analytics/retail-datagen/internal/logging"
)

// Secondary indexes built after the bulk load so inserts never pay index
// maintenance costs.
var saleIndexes = []struct {
	name string
	ddl  string
}{
	{"idx_fact_sales_date", "CREATE INDEX idx_fact_sales_date ON fact_sales (sale_date)"},
	{"idx_fact_sales_store", "CREATE INDEX idx_fact_sales_store ON fact_sales (store_id)"},
	{"idx_fact_sales_product", "CREATE INDEX idx_fact_sales_product ON fact_sales (product_id)"},
	{"idx_fact_sales_customer", "CREATE INDEX idx_fact_sales_customer ON fact_sales (customer_id)"},
	{"idx_fact_sales_store_product_date", "CREATE INDEX idx_fact_sales_store_product_date ON fact_sales (store_id, product_id, sale_date)"},
}

// duplicateTable is the SQLSTATE Postgres reports when a relation with the
// index's name already exists.
const duplicateTable = "42P07"

// createIndexes builds the fact table's query-optimization indexes, each in
// its own transaction. An already-existing index is expected on re-runs;
// any other failure is logged as a warning and the remaining indexes are
// still attempted.
func (p *Pipeline) createIndexes(ctx context.Context) {
	logging.Info().Msg("Creating indexes")

	for _, idx := range saleIndexes {
		if err := p.createIndex(ctx, idx.ddl); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == duplicateTable {
				logging.Debug().Str("index", idx.name).Msg("Index already exists")
				continue
			}
			logging.Warn().Err(err).Str("index", idx.name).Msg("Index creation failed")
		}
	}

	logging.Info().Msg("Index creation complete")
}

func (p *Pipeline) createIndex(ctx context.Context, ddl string) error {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
