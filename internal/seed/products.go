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

// ProductCategory maps a category to its fixed subcategory list. Order
// matters: product IDs are assigned category by category.
type ProductCategory struct {
	Name          string
	Subcategories []string
}

// Categories is the fixed product taxonomy.
var Categories = []ProductCategory{
	{"Textile", []string{"T-Shirt", "Dress", "Pants", "Jacket", "Sweater"}},
	{"Accessories", []string{"Hat", "Scarf", "Bag", "Shoes", "Gloves"}},
	{"Seasonal", []string{"Swimwear", "Thermal", "Snow Boots", "Sunglasses", "Winter Coat"}},
}

var (
	productColors    = []string{"Red", "Blue", "Black", "White", "Green"}
	productSizes     = []string{"S", "M", "L", "XL", "One Size"}
	productMaterials = []string{"Cotton", "Polyester", "Wool", "Silk"}
	productSeasons   = []string{"Spring", "Summer", "Fall", "Winter", "Year-Round"}
	productBrands    = []string{"Brand A", "Brand B", "Brand C", "Brand D", "Generic"}
)

// ProductRecord is one row of the product dimension.
type ProductRecord struct {
	ProductID    int
	Name         string
	Code         string
	Category     string
	Subcategory  string
	Color        string
	Size         string
	Material     string
	Season       string
	Brand        string
	UnitCost     float64
	ListPrice    float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	IsCurrent    bool
	SCDStartDate time.Time
}

// GenerateProducts produces count/len(Categories) records per category with
// sequential IDs across categories. When count is not a multiple of the
// category count the remainder is silently dropped. List price is cost
// times a markup factor greater than one, so list_price > unit_cost for
// every record.
func GenerateProducts(f *datagen.Faker, count int, now time.Time) []ProductRecord {
	perCategory := count / len(Categories)
	products := make([]ProductRecord, 0, perCategory*len(Categories))
	id := 1

	for _, cat := range Categories {
		for i := 0; i < perCategory; i++ {
			sub := cat.Subcategories[i%len(cat.Subcategories)]
			cost := f.Float64(5, 50)

			products = append(products, ProductRecord{
				ProductID: id,
				// Two-letter suffix keeps names unique within a category
				// for up to 26*26 products.
				Name:         fmt.Sprintf("%s - %c%c", sub, 'A'+i%26, 'A'+(i/26)%26),
				Code:         fmt.Sprintf("PRD%05d", id),
				Category:     cat.Name,
				Subcategory:  sub,
				Color:        datagen.Choose(f, productColors),
				Size:         datagen.Choose(f, productSizes),
				Material:     datagen.Choose(f, productMaterials),
				Season:       datagen.Choose(f, productSeasons),
				Brand:        datagen.Choose(f, productBrands),
				UnitCost:     cost,
				ListPrice:    cost * f.Float64(1.5, 3.5),
				Status:       "Active",
				CreatedAt:    now,
				UpdatedAt:    now,
				IsCurrent:    true,
				SCDStartDate: now,
			})
			id++
		}
	}

	return products
}

var dimProductColumns = []string{
	"product_id", "product_name", "product_code", "category", "subcategory",
	"color", "size", "material", "season", "brand", "unit_cost", "list_price",
	"status", "created_at", "updated_at", "is_current", "scd_start_date",
}

func (p *Pipeline) seedProducts(ctx context.Context) (int, error) {
	logging.Info().Msg("Generating product dimension")

	records := GenerateProducts(p.faker, p.cfg.Products, time.Now().UTC())
	if len(records) < p.cfg.Products {
		logging.Warn().
			Int("requested", p.cfg.Products).
			Int("generated", len(records)).
			Msg("Product count is not a multiple of the category count; remainder dropped")
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.ProductID, r.Name, r.Code, r.Category, r.Subcategory,
			r.Color, r.Size, r.Material, r.Season, r.Brand, r.UnitCost, r.ListPrice,
			r.Status, r.CreatedAt, r.UpdatedAt, r.IsCurrent, r.SCDStartDate,
		})
	}

	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := insertRows(ctx, tx, "dim_product", dimProductColumns, rows); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit dim_product: %w", err)
	}

	logging.Info().Int("count", len(records)).Msg("Generated product records")
	return len(records), nil
}
