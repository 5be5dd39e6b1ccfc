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
	"time"

	"github.com/lcv-analytics/retail-datagen/internal/datagen"
	"github.com/lcv-analytics/retail-datagen/internal/logging"
)

// loyaltyRate is the probability that a generated customer is a loyalty
// program member.
const loyaltyRate = 0.7

// CustomerRecord is one row of the customer dimension. Lifetime counters
// start at zero; they are maintained by the platform, not back-filled from
// generated sales.
type CustomerRecord struct {
	CustomerID        int
	LoyaltyMember     bool
	JoinDate          *time.Time
	FirstPurchaseDate *time.Time
	LastPurchaseDate  *time.Time
	LifetimePurchases int
	LifetimeSpend     float64
	Country           string
	Status            string
}

// GenerateCustomers produces count records with sequential IDs starting at
// 1. Join and first-purchase dates are set only for loyalty members.
func GenerateCustomers(f *datagen.Faker, count int) []CustomerRecord {
	customers := make([]CustomerRecord, 0, count)

	for id := 1; id <= count; id++ {
		rec := CustomerRecord{
			CustomerID: id,
			Country:    "USA",
			Status:     "Active",
		}

		if f.Chance(loyaltyRate) {
			rec.LoyaltyMember = true
			joined := f.DaysAgo(30, 1000)
			rec.JoinDate = &joined
			rec.FirstPurchaseDate = &joined
		}

		customers = append(customers, rec)
	}

	return customers
}

var dimCustomerColumns = []string{
	"customer_id", "loyalty_member", "join_date", "first_purchase_date",
	"last_purchase_date", "lifetime_purchases", "lifetime_spend",
	"country", "status",
}

func (p *Pipeline) seedCustomers(ctx context.Context) (int, error) {
	logging.Info().Msg("Generating customer dimension")

	records := GenerateCustomers(p.faker, p.cfg.Customers)

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.CustomerID, r.LoyaltyMember, r.JoinDate, r.FirstPurchaseDate,
			r.LastPurchaseDate, r.LifetimePurchases, r.LifetimeSpend,
			r.Country, r.Status,
		})
	}

	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := insertRows(ctx, tx, "dim_customer", dimCustomerColumns, rows); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit dim_customer: %w", err)
	}

	logging.Info().Int("count", len(records)).Msg("Generated customer records")
	return len(records), nil
}
