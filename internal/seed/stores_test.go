package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/lcv-analytics/retail-datagen/internal/datagen"
)

func TestGenerateStoresCount(t *testing.T) {
	f := datagen.NewFaker(42)

	for _, count := range []int{1, 5, 50} {
		stores := GenerateStores(f, count)
		if len(stores) != count {
			t.Errorf("GenerateStores(%d): got %d records", count, len(stores))
		}
	}
}

func TestGenerateStoresIDs(t *testing.T) {
	f := datagen.NewFaker(42)
	stores := GenerateStores(f, 20)

	for i, s := range stores {
		if s.StoreID != i+1 {
			t.Fatalf("Store at index %d has ID %d, want %d", i, s.StoreID, i+1)
		}
	}
}

func TestGenerateStoresRegionRoundRobin(t *testing.T) {
	f := datagen.NewFaker(42)
	stores := GenerateStores(f, 7)

	want := []string{"North", "South", "East", "West", "Central", "North", "South"}
	for i, s := range stores {
		if s.Region != want[i] {
			t.Errorf("Store %d region %s, want %s", s.StoreID, s.Region, want[i])
		}
	}
}

func TestGenerateStoresDerivedFields(t *testing.T) {
	f := datagen.NewFaker(42)
	stores := GenerateStores(f, 12)

	for _, s := range stores {
		wantName := fmt.Sprintf("Store %d - %s", s.StoreID, s.Region)
		if s.Name != wantName {
			t.Errorf("Store %d name %q, want %q", s.StoreID, s.Name, wantName)
		}
		wantCode := fmt.Sprintf("ST%04d", s.StoreID)
		if s.Code != wantCode {
			t.Errorf("Store %d code %q, want %q", s.StoreID, s.Code, wantCode)
		}
		wantCity := fmt.Sprintf("City_%s_%d", s.Region, s.StoreID%10)
		if s.City != wantCity {
			t.Errorf("Store %d city %q, want %q", s.StoreID, s.City, wantCity)
		}
	}
}

func TestGenerateStoresRanges(t *testing.T) {
	f := datagen.NewFaker(42)
	stores := GenerateStores(f, 100)
	now := time.Now().UTC()

	for _, s := range stores {
		if s.Latitude < 30.0 || s.Latitude > 40.0 {
			t.Errorf("Store %d latitude out of range: %f", s.StoreID, s.Latitude)
		}
		if s.Longitude < -120.0 || s.Longitude > -70.0 {
			t.Errorf("Store %d longitude out of range: %f", s.StoreID, s.Longitude)
		}
		if s.SquareMeters < 1000 || s.SquareMeters > 10000 {
			t.Errorf("Store %d square meters out of range: %d", s.StoreID, s.SquareMeters)
		}
		if !s.OpeningDate.Before(now) {
			t.Errorf("Store %d opening date in the future: %v", s.StoreID, s.OpeningDate)
		}
		if s.ClosingDate != nil {
			t.Errorf("Store %d should not have a closing date", s.StoreID)
		}
		if s.Status != "Active" {
			t.Errorf("Store %d status %q, want Active", s.StoreID, s.Status)
		}
		if s.Country != "USA" {
			t.Errorf("Store %d country %q, want USA", s.StoreID, s.Country)
		}
		if s.Manager == "" {
			t.Errorf("Store %d has empty manager name", s.StoreID)
		}
	}
}

func TestGenerateStoresDeterministic(t *testing.T) {
	a := GenerateStores(datagen.NewFaker(7), 25)
	b := GenerateStores(datagen.NewFaker(7), 25)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Store generation not deterministic at index %d: %+v != %+v",
				i, a[i], b[i])
		}
	}
}
