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
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lcv-analytics/retail-datagen/internal/datagen"
	"github.com/lcv-analytics/retail-datagen/internal/logging"
)

const (
	// loyaltySaleRate is the fraction of sales attributed to a known
	// customer; the rest are anonymous checkouts with a null customer key.
	loyaltySaleRate = 0.8

	// returnRate is the fraction of sales marked as returns.
	returnRate = 0.05
)

var paymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Mobile Pay"}

// Weighted discount distribution: half of all sales carry no discount.
var (
	discountPcts    = []int{0, 5, 10, 15, 20}
	discountWeights = []int{50, 20, 15, 10, 5}
)

// SaleRecord is one row of the sales fact table.
type SaleRecord struct {
	SaleID         int64
	StoreID        int
	ProductID      int
	CustomerID     *int
	SaleDate       time.Time
	Quantity       int
	UnitPrice      float64
	TotalAmount    float64
	DiscountPct    int
	DiscountAmount float64
	NetAmount      float64
	CostAmount     float64
	MarginAmount   float64
	PaymentMethod  string
	IsReturn       bool
}

// computeAmounts derives the financial measures for a sale:
// total = price * quantity, discount = total * pct / 100, net = total - discount.
func computeAmounts(unitPrice float64, quantity, discountPct int) (total, discount, net float64) {
	total = unitPrice * float64(quantity)
	if discountPct > 0 {
		discount = total * float64(discountPct) / 100
	}
	net = total - discount
	return total, discount, net
}

// GenerateSale produces one fact record. Foreign keys are sampled uniformly
// from the dimension key ranges; the sale date falls within
// [base, base+historyDays].
func GenerateSale(f *datagen.Faker, id int64, base time.Time, historyDays int, keys DimKeys) SaleRecord {
	rec := SaleRecord{
		SaleID:    id,
		StoreID:   f.Int(1, keys.Stores),
		ProductID: f.Int(1, keys.Products),
		SaleDate:  base.AddDate(0, 0, f.Int(0, historyDays)),
	}

	if f.Chance(loyaltySaleRate) {
		customerID := f.Int(1, keys.Customers)
		rec.CustomerID = &customerID
	}

	rec.Quantity = f.Int(1, 9)
	rec.UnitPrice = f.Float64(10, 200)

	// Unit cost implies a 50-150% margin on cost before discounts.
	costMarkup := f.Float64(1.5, 2.5)
	rec.CostAmount = rec.UnitPrice / costMarkup * float64(rec.Quantity)

	rec.DiscountPct = datagen.ChooseWeighted(f, discountPcts, discountWeights)
	rec.TotalAmount, rec.DiscountAmount, rec.NetAmount =
		computeAmounts(rec.UnitPrice, rec.Quantity, rec.DiscountPct)
	rec.MarginAmount = rec.NetAmount - rec.CostAmount

	if f.Chance(returnRate) {
		rec.IsReturn = true
		rec.NetAmount = -math.Abs(rec.NetAmount)
		rec.CostAmount = -math.Abs(rec.CostAmount)
		rec.MarginAmount = rec.NetAmount - rec.CostAmount
	}

	rec.PaymentMethod = datagen.Choose(f, paymentMethods)
	return rec
}

var factSalesColumns = []string{
	"sale_id", "store_id", "product_id", "customer_id", "sale_date",
	"quantity", "unit_price", "total_amount", "discount_pct",
	"discount_amount", "net_amount", "cost_amount", "margin_amount",
	"payment_method", "is_return",
}

// seedSales streams p.cfg.Sales fact records in batches of p.cfg.BatchSize.
// Each batch is fully materialized, written with COPY, and committed before
// the next begins, so peak memory is bounded by one batch and a mid-run
// failure leaves a committed prefix of batches behind.
func (p *Pipeline) seedSales(ctx context.Context, today time.Time, keys DimKeys) error {
	total := p.cfg.Sales
	logging.Info().
		Int("count", total).
		Int("batch_size", p.cfg.BatchSize).
		Msg("Generating sales facts")

	base := today.AddDate(0, 0, -p.cfg.HistoryDays)
	progress := datagen.NewProgressReporter("fact_sales", int64(total), int64(p.cfg.BatchSize)*10)

	batch := make([][]any, 0, p.cfg.BatchSize)
	for id := int64(1); id <= int64(total); id++ {
		r := GenerateSale(p.faker, id, base, p.cfg.HistoryDays, keys)
		batch = append(batch, []any{
			r.SaleID, r.StoreID, r.ProductID, r.CustomerID, r.SaleDate,
			r.Quantity, r.UnitPrice, r.TotalAmount, r.DiscountPct,
			r.DiscountAmount, r.NetAmount, r.CostAmount, r.MarginAmount,
			r.PaymentMethod, r.IsReturn,
		})

		if len(batch) >= p.cfg.BatchSize || id == int64(total) {
			if err := p.copySalesBatch(ctx, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	progress.Done()
	return nil
}

// copySalesBatch writes one batch inside its own transaction.
func (p *Pipeline) copySalesBatch(ctx context.Context, rows [][]any) error {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"fact_sales"},
		factSalesColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy fact_sales batch: %w", err)
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("copy fact_sales batch: wrote %d of %d rows", copied, len(rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit fact_sales batch: %w", err)
	}
	return nil
}
