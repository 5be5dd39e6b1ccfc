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

// Regions stores are distributed across, assigned round-robin by store ID.
var Regions = []string{"North", "South", "East", "West", "Central"}

var storeTypes = []string{"Flagship", "Standard", "Express", "Pop-up"}

// StoreRecord is one row of the store dimension.
type StoreRecord struct {
	StoreID      int
	Name         string
	Code         string
	Region       string
	Country      string
	City         string
	Latitude     float64
	Longitude    float64
	StoreType    string
	OpeningDate  time.Time
	ClosingDate  *time.Time
	Manager      string
	Status       string
	SquareMeters int
}

// GenerateStores produces count records with dense sequential IDs starting
// at 1. Region assignment is deterministic given the ID; the remaining
// attributes are sampled independently per record.
func GenerateStores(f *datagen.Faker, count int) []StoreRecord {
	stores := make([]StoreRecord, 0, count)

	for id := 1; id <= count; id++ {
		region := Regions[(id-1)%len(Regions)]

		stores = append(stores, StoreRecord{
			StoreID:   id,
			Name:      fmt.Sprintf("Store %d - %s", id, region),
			Code:      fmt.Sprintf("ST%04d", id),
			Region:    region,
			Country:   "USA",
			City:      fmt.Sprintf("City_%s_%d", region, id%10),
			Latitude:  f.Float64(30.0, 40.0),
			Longitude: f.Float64(-120.0, -70.0),
			StoreType: datagen.Choose(f, storeTypes),
			// Stores opened between one and ten years ago.
			OpeningDate:  f.DaysAgo(365, 3650),
			Manager:      f.Name(),
			Status:       "Active",
			SquareMeters: f.Int(1000, 10000),
		})
	}

	return stores
}

var dimStoreColumns = []string{
	"store_id", "store_name", "store_code", "region", "country", "city",
	"latitude", "longitude", "store_type", "opening_date", "closing_date",
	"store_manager", "status", "square_meters",
}

func (p *Pipeline) seedStores(ctx context.Context) (int, error) {
	logging.Info().Msg("Generating store dimension")

	records := GenerateStores(p.faker, p.cfg.Stores)

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.StoreID, r.Name, r.Code, r.Region, r.Country, r.City,
			r.Latitude, r.Longitude, r.StoreType, r.OpeningDate, r.ClosingDate,
			r.Manager, r.Status, r.SquareMeters,
		})
	}

	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := insertRows(ctx, tx, "dim_store", dimStoreColumns, rows); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit dim_store: %w", err)
	}

	logging.Info().Int("count", len(records)).Msg("Generated store records")
	return len(records), nil
}
