package seed

import (
	"math"
	"testing"
	"time"

	"github.com/lcv-analytics/retail-datagen/internal/datagen"
)

const amountTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < amountTolerance
}

func TestComputeAmounts(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    float64
		quantity     int
		discountPct  int
		wantTotal    float64
		wantDiscount float64
		wantNet      float64
	}{
		{"ten percent discount", 100, 2, 10, 200, 20, 180},
		{"no discount", 50, 3, 0, 150, 0, 150},
		{"max discount", 10, 1, 20, 10, 2, 8},
		{"single item", 19.99, 1, 5, 19.99, 0.9995, 18.9905},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, discount, net := computeAmounts(tt.unitPrice, tt.quantity, tt.discountPct)
			if !almostEqual(total, tt.wantTotal) {
				t.Errorf("total %f, want %f", total, tt.wantTotal)
			}
			if !almostEqual(discount, tt.wantDiscount) {
				t.Errorf("discount %f, want %f", discount, tt.wantDiscount)
			}
			if !almostEqual(net, tt.wantNet) {
				t.Errorf("net %f, want %f", net, tt.wantNet)
			}
		})
	}
}

func testKeys() DimKeys {
	return DimKeys{Stores: 10, Products: 30, Customers: 200}
}

func TestGenerateSaleKeys(t *testing.T) {
	f := datagen.NewFaker(42)
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	keys := testKeys()

	for id := int64(1); id <= 5000; id++ {
		r := GenerateSale(f, id, base, 730, keys)

		if r.SaleID != id {
			t.Fatalf("SaleID %d, want %d", r.SaleID, id)
		}
		if r.StoreID < 1 || r.StoreID > keys.Stores {
			t.Fatalf("Sale %d store ID %d outside [1, %d]", id, r.StoreID, keys.Stores)
		}
		if r.ProductID < 1 || r.ProductID > keys.Products {
			t.Fatalf("Sale %d product ID %d outside [1, %d]", id, r.ProductID, keys.Products)
		}
		if r.CustomerID != nil && (*r.CustomerID < 1 || *r.CustomerID > keys.Customers) {
			t.Fatalf("Sale %d customer ID %d outside [1, %d]", id, *r.CustomerID, keys.Customers)
		}
		if r.SaleDate.Before(base) || r.SaleDate.After(base.AddDate(0, 0, 730)) {
			t.Fatalf("Sale %d date %v outside history window", id, r.SaleDate)
		}
	}
}

func TestGenerateSaleAmounts(t *testing.T) {
	f := datagen.NewFaker(42)
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	keys := testKeys()

	for id := int64(1); id <= 5000; id++ {
		r := GenerateSale(f, id, base, 730, keys)

		if r.Quantity < 1 || r.Quantity > 9 {
			t.Fatalf("Sale %d quantity out of range: %d", id, r.Quantity)
		}
		if r.UnitPrice < 10 || r.UnitPrice > 200 {
			t.Fatalf("Sale %d unit price out of range: %f", id, r.UnitPrice)
		}

		if !almostEqual(r.TotalAmount, r.UnitPrice*float64(r.Quantity)) {
			t.Fatalf("Sale %d total %f != price*quantity", id, r.TotalAmount)
		}
		if !almostEqual(r.DiscountAmount, r.TotalAmount*float64(r.DiscountPct)/100) {
			t.Fatalf("Sale %d discount %f inconsistent with pct %d", id, r.DiscountAmount, r.DiscountPct)
		}

		if r.IsReturn {
			if r.NetAmount > 0 {
				t.Fatalf("Return %d has positive net amount %f", id, r.NetAmount)
			}
			if r.CostAmount > 0 {
				t.Fatalf("Return %d has positive cost amount %f", id, r.CostAmount)
			}
		} else {
			if !almostEqual(r.NetAmount, r.TotalAmount-r.DiscountAmount) {
				t.Fatalf("Sale %d net %f != total - discount", id, r.NetAmount)
			}
			if r.CostAmount <= 0 {
				t.Fatalf("Sale %d has non-positive cost %f", id, r.CostAmount)
			}
		}
		if !almostEqual(r.MarginAmount, r.NetAmount-r.CostAmount) {
			t.Fatalf("Sale %d margin %f != net - cost", id, r.MarginAmount)
		}
	}
}

func TestGenerateSaleDiscountValues(t *testing.T) {
	f := datagen.NewFaker(42)
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	keys := testKeys()

	valid := map[int]bool{0: true, 5: true, 10: true, 15: true, 20: true}
	counts := make(map[int]int)
	const draws = 20000
	for id := int64(1); id <= draws; id++ {
		r := GenerateSale(f, id, base, 730, keys)
		if !valid[r.DiscountPct] {
			t.Fatalf("Sale %d has invalid discount pct %d", id, r.DiscountPct)
		}
		counts[r.DiscountPct]++
	}

	// Half of all sales carry no discount.
	zeroRate := float64(counts[0]) / draws
	if zeroRate < 0.45 || zeroRate > 0.55 {
		t.Errorf("Zero-discount rate %f outside [0.45, 0.55]", zeroRate)
	}
}

func TestGenerateSaleRates(t *testing.T) {
	f := datagen.NewFaker(42)
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	keys := testKeys()

	anonymous := 0
	returns := 0
	const draws = 20000
	for id := int64(1); id <= draws; id++ {
		r := GenerateSale(f, id, base, 730, keys)
		if r.CustomerID == nil {
			anonymous++
		}
		if r.IsReturn {
			returns++
		}
	}

	anonRate := float64(anonymous) / draws
	if anonRate < 0.15 || anonRate > 0.25 {
		t.Errorf("Anonymous sale rate %f outside [0.15, 0.25]", anonRate)
	}
	retRate := float64(returns) / draws
	if retRate < 0.03 || retRate > 0.07 {
		t.Errorf("Return rate %f outside [0.03, 0.07]", retRate)
	}
}

func TestGenerateSaleReproducible(t *testing.T) {
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	keys := testKeys()

	f1 := datagen.NewFaker(42)
	f2 := datagen.NewFaker(42)

	for id := int64(1); id <= 1000; id++ {
		a := GenerateSale(f1, id, base, 730, keys)
		b := GenerateSale(f2, id, base, 730, keys)

		if a.StoreID != b.StoreID || a.ProductID != b.ProductID ||
			a.Quantity != b.Quantity || a.UnitPrice != b.UnitPrice ||
			a.DiscountPct != b.DiscountPct || a.IsReturn != b.IsReturn ||
			!a.SaleDate.Equal(b.SaleDate) {
			t.Fatalf("Sale generation not reproducible at ID %d", id)
		}
		if (a.CustomerID == nil) != (b.CustomerID == nil) {
			t.Fatalf("Sale generation not reproducible at ID %d", id)
		}
	}
}
