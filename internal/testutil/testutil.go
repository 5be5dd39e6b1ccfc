//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing. The
// generator itself never creates schema; the star schema DDL here exists
// only so tests can stand up a scratch copy of the destination tables.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	// DefaultTestConnString is the default connection string for tests.
	// Override with the RETAIL_DATAGEN_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix is the prefix for test databases.
	TestDBPrefix = "retail_datagen_test_"
)

// SchemaDDL creates the five destination tables the generator populates.
const SchemaDDL = `
CREATE TABLE dim_date (
    date_id        INTEGER PRIMARY KEY,
    date_value     DATE NOT NULL,
    day_of_week    INTEGER NOT NULL,
    day_name       VARCHAR(9) NOT NULL,
    week_of_year   INTEGER NOT NULL,
    month          INTEGER NOT NULL,
    month_name     VARCHAR(9) NOT NULL,
    quarter        INTEGER NOT NULL,
    fiscal_quarter INTEGER NOT NULL,
    year           INTEGER NOT NULL,
    fiscal_year    INTEGER NOT NULL,
    is_weekend     BOOLEAN NOT NULL,
    is_holiday     BOOLEAN NOT NULL,
    holiday_name   VARCHAR(50)
);

CREATE TABLE dim_store (
    store_id      INTEGER PRIMARY KEY,
    store_name    VARCHAR(100) NOT NULL,
    store_code    VARCHAR(10) NOT NULL,
    region        VARCHAR(20) NOT NULL,
    country       VARCHAR(20) NOT NULL,
    city          VARCHAR(50) NOT NULL,
    latitude      NUMERIC(9,6),
    longitude     NUMERIC(9,6),
    store_type    VARCHAR(20),
    opening_date  DATE,
    closing_date  DATE,
    store_manager VARCHAR(60),
    status        VARCHAR(20),
    square_meters INTEGER
);

CREATE TABLE dim_product (
    product_id     INTEGER PRIMARY KEY,
    product_name   VARCHAR(100) NOT NULL,
    product_code   VARCHAR(10) NOT NULL,
    category       VARCHAR(30) NOT NULL,
    subcategory    VARCHAR(30) NOT NULL,
    color          VARCHAR(20),
    size           VARCHAR(10),
    material       VARCHAR(20),
    season         VARCHAR(20),
    brand          VARCHAR(30),
    unit_cost      NUMERIC(10,2),
    list_price     NUMERIC(10,2),
    status         VARCHAR(20),
    created_at     TIMESTAMPTZ,
    updated_at     TIMESTAMPTZ,
    is_current     BOOLEAN,
    scd_start_date TIMESTAMPTZ
);

CREATE TABLE dim_customer (
    customer_id         INTEGER PRIMARY KEY,
    loyalty_member      BOOLEAN NOT NULL,
    join_date           DATE,
    first_purchase_date DATE,
    last_purchase_date  DATE,
    lifetime_purchases  INTEGER,
    lifetime_spend      NUMERIC(12,2),
    country             VARCHAR(20),
    status              VARCHAR(20)
);

CREATE TABLE fact_sales (
    sale_id         BIGINT PRIMARY KEY,
    store_id        INTEGER NOT NULL REFERENCES dim_store(store_id),
    product_id      INTEGER NOT NULL REFERENCES dim_product(product_id),
    customer_id     INTEGER REFERENCES dim_customer(customer_id),
    sale_date       DATE NOT NULL,
    quantity        INTEGER NOT NULL,
    unit_price      NUMERIC(10,2) NOT NULL,
    total_amount    NUMERIC(12,2) NOT NULL,
    discount_pct    INTEGER NOT NULL,
    discount_amount NUMERIC(12,2) NOT NULL,
    net_amount      NUMERIC(12,2) NOT NULL,
    cost_amount     NUMERIC(12,2) NOT NULL,
    margin_amount   NUMERIC(12,2) NOT NULL,
    payment_method  VARCHAR(20),
    is_return       BOOLEAN NOT NULL
);
`

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv("RETAIL_DATAGEN_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return ""
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// CreateTestDB creates a test database and returns its connection string
// and name.
func CreateTestDB(t *testing.T, baseConnStr string) (string, string) {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	dbName := TestDBPrefix + hex.EncodeToString(randomBytes)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		t.Fatalf("Failed to drop existing test database: %v", err)
	}
	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	config, err := pgx.ParseConfig(baseConnStr)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	// Build the connection string manually since ConnString() doesn't
	// reflect changes made to the parsed config.
	var testConnStr string
	if config.Password != "" {
		testConnStr = fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			config.User, config.Password, config.Host, config.Port, dbName)
	} else {
		testConnStr = fmt.Sprintf("postgres://%s@%s:%d/%s",
			config.User, config.Host, config.Port, dbName)
	}

	return testConnStr, dbName
}

// DropTestDB drops the test database.
func DropTestDB(t *testing.T, baseConnStr, dbName string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, baseConnStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer conn.Close(ctx)

	// Terminate connections to the database
	_, _ = conn.Exec(ctx, fmt.Sprintf(`
        SELECT pg_terminate_backend(pid)
        FROM pg_stat_activity
        WHERE datname = '%s' AND pid <> pg_backend_pid()
    `, dbName))

	if _, err := conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}

// ConnectTestDB connects to a test database.
func ConnectTestDB(t *testing.T, connStr string) *pgx.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return conn
}

// CreateSchema applies the star schema DDL to the test database.
func CreateSchema(t *testing.T, conn *pgx.Conn) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := conn.Exec(ctx, SchemaDDL); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
}
