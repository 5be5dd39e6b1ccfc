package seed

import (
	"testing"
	"time"

	"github.com/lcv-analytics/retail-datagen/internal/datagen"
)

func TestGenerateProductsEvenSplit(t *testing.T) {
	f := datagen.NewFaker(42)
	now := time.Now().UTC()
	products := GenerateProducts(f, 15, now)

	if len(products) != 15 {
		t.Fatalf("Expected 15 products, got %d", len(products))
	}

	perCategory := make(map[string]int)
	for _, p := range products {
		perCategory[p.Category]++
	}
	if len(perCategory) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(perCategory))
	}
	for cat, n := range perCategory {
		if n != 5 {
			t.Errorf("Category %s has %d products, want 5", cat, n)
		}
	}
}

func TestGenerateProductsRemainderDropped(t *testing.T) {
	f := datagen.NewFaker(42)
	now := time.Now().UTC()

	tests := []struct {
		count int
		want  int
	}{
		{16, 15},
		{17, 15},
		{18, 18},
		{2, 0},
		{500, 498},
	}

	for _, tt := range tests {
		products := GenerateProducts(f, tt.count, now)
		if len(products) != tt.want {
			t.Errorf("GenerateProducts(%d): got %d records, want %d",
				tt.count, len(products), tt.want)
		}
	}
}

func TestGenerateProductsIDs(t *testing.T) {
	f := datagen.NewFaker(42)
	products := GenerateProducts(f, 30, time.Now().UTC())

	for i, p := range products {
		if p.ProductID != i+1 {
			t.Fatalf("Product at index %d has ID %d, want %d", i, p.ProductID, i+1)
		}
	}
}

func TestGenerateProductsPricing(t *testing.T) {
	f := datagen.NewFaker(42)
	products := GenerateProducts(f, 300, time.Now().UTC())

	for _, p := range products {
		if p.UnitCost < 5 || p.UnitCost > 50 {
			t.Errorf("Product %d unit cost out of range: %f", p.ProductID, p.UnitCost)
		}
		if p.ListPrice <= p.UnitCost {
			t.Errorf("Product %d list price %f not above unit cost %f",
				p.ProductID, p.ListPrice, p.UnitCost)
		}
		if p.ListPrice > p.UnitCost*3.5 {
			t.Errorf("Product %d list price %f exceeds max markup of cost %f",
				p.ProductID, p.ListPrice, p.UnitCost)
		}
	}
}

func TestGenerateProductsSubcategories(t *testing.T) {
	f := datagen.NewFaker(42)
	products := GenerateProducts(f, 30, time.Now().UTC())

	subsByCategory := make(map[string][]string)
	for _, c := range Categories {
		subsByCategory[c.Name] = c.Subcategories
	}

	for _, p := range products {
		subs, ok := subsByCategory[p.Category]
		if !ok {
			t.Fatalf("Product %d has unknown category %s", p.ProductID, p.Category)
		}
		found := false
		for _, s := range subs {
			if p.Subcategory == s {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Product %d subcategory %s not in category %s",
				p.ProductID, p.Subcategory, p.Category)
		}
	}
}

func TestGenerateProductsNamesUnique(t *testing.T) {
	f := datagen.NewFaker(42)
	products := GenerateProducts(f, 1500, time.Now().UTC())

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		key := p.Category + "/" + p.Name
		if seen[key] {
			t.Fatalf("Duplicate product name within category: %s", key)
		}
		seen[key] = true
	}
}

func TestGenerateProductsSCDFields(t *testing.T) {
	f := datagen.NewFaker(42)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	products := GenerateProducts(f, 9, now)

	for _, p := range products {
		if !p.IsCurrent {
			t.Errorf("Product %d should be current", p.ProductID)
		}
		if !p.SCDStartDate.Equal(now) || !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
			t.Errorf("Product %d timestamps not pinned to generation time", p.ProductID)
		}
		if p.Status != "Active" {
			t.Errorf("Product %d status %q, want Active", p.ProductID, p.Status)
		}
	}
}
