package saved

import (
	"path/filepath"
	"testing"

	"github.com/evcraddock/propfinder/internal/db"
	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/search"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	return NewRepository(database)
}

func sampleFilters() *search.Filters {
	minPrice := 500_000.0
	return &search.Filters{
		Types:     []property.Type{property.TypeOffice},
		Location:  &search.LocationFilter{Cities: []string{"Austin"}},
		Financial: &search.FinancialFilter{MinPrice: &minPrice},
		Limit:     25,
	}
}

func TestSaveAndGet(t *testing.T) {
	repo := newTestRepository(t)

	saved, err := repo.Save("austin-offices", sampleFilters())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Error("saved search has no ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("saved search has no timestamp")
	}

	got, err := repo.Get("austin-offices")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Filters.Types) != 1 || got.Filters.Types[0] != property.TypeOffice {
		t.Errorf("types did not round-trip: %+v", got.Filters.Types)
	}
	if got.Filters.Location == nil || got.Filters.Location.Cities[0] != "Austin" {
		t.Errorf("location did not round-trip: %+v", got.Filters.Location)
	}
	if got.Filters.Financial == nil || *got.Filters.Financial.MinPrice != 500_000 {
		t.Errorf("financial did not round-trip: %+v", got.Filters.Financial)
	}
	if got.Filters.Limit != 25 {
		t.Errorf("limit = %d, want 25", got.Filters.Limit)
	}
}

func TestSaveReplacesByName(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.Save("mine", sampleFilters()); err != nil {
		t.Fatal(err)
	}

	updated := sampleFilters()
	updated.Limit = 50
	if _, err := repo.Save("mine", updated); err != nil {
		t.Fatalf("replacing: %v", err)
	}

	got, err := repo.Get("mine")
	if err != nil {
		t.Fatal(err)
	}
	if got.Filters.Limit != 50 {
		t.Errorf("limit = %d, want updated 50", got.Filters.Limit)
	}

	all, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("got %d saved searches, want 1 after replace", len(all))
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.Save("", sampleFilters()); err == nil {
		t.Error("empty name should not save")
	}

	lo, hi := 100.0, 50.0
	bad := &search.Filters{Financial: &search.FinancialFilter{MinPrice: &lo, MaxPrice: &hi}}
	if _, err := repo.Save("bad", bad); err == nil {
		t.Error("invalid filters should not save")
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Save(name, sampleFilters()); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d saved searches, want 3", len(all))
	}
	if all[0].Name != "third" || all[2].Name != "first" {
		t.Errorf("order = %s,%s,%s, want newest first", all[0].Name, all[1].Name, all[2].Name)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.Save("temp", sampleFilters()); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete("temp"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get("temp"); err == nil {
		t.Error("deleted search still readable")
	}
	if err := repo.Delete("temp"); err == nil {
		t.Error("deleting a missing search should error")
	}
}
