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
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// insertChunk bounds rows per INSERT statement. The wire protocol caps a
// statement at 65535 bind parameters, so chunk * columns must stay under
// that for every dimension table.
const insertChunk = 1000

// insertRows bulk-inserts rows into table with parameterized multi-row
// INSERT statements, chunked to respect the bind parameter limit. All
// chunks execute on the caller's transaction.
func insertRows(ctx context.Context, tx pgx.Tx, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))

		b := sq.Insert(table).
			Columns(columns...).
			PlaceholderFormat(sq.Dollar)
		for _, row := range rows[start:end] {
			b = b.Values(row...)
		}

		sql, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("build insert for %s: %w", table, err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}
