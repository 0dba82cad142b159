package catalog

import "testing"

func sampleCatalog() []Product {
	return []Product{
		{ID: 1, Title: "Smartphone Case", Price: 15, Category: "Electronics"},
		{ID: 2, Title: "Hoodie", Price: 35, Category: "Clothing"},
		{ID: 3, Title: "Phone Charger", Price: 15, Category: "Electronics"},
		{ID: 4, Title: "Headphones", Price: 55, Category: "electronics"},
		{ID: 5, Title: "Mug", Price: 8, Category: ""},
	}
}

func productIDs(products []Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got []Product, want ...int64) {
	t.Helper()
	ids := productIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, ids)
		}
	}
}

func TestApplyFiltersIdentity(t *testing.T) {
	catalog := sampleCatalog()
	result := ApplyFilters(catalog, "", "", SortNone)
	assertIDs(t, result, 1, 2, 3, 4, 5)
}

func TestApplyFiltersCategoryIsCaseInsensitive(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), "ELECTRONICS", "", SortNone)
	assertIDs(t, result, 1, 3, 4)
}

func TestApplyFiltersCategoryAndSearchCombine(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), "Electronics", "PHONE", SortNone)
	assertIDs(t, result, 1, 3, 4)

	result = ApplyFilters(sampleCatalog(), "Electronics", "charger", SortNone)
	assertIDs(t, result, 3)
}

func TestApplyFiltersSearchOnly(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), "", "ho", SortNone)
	assertIDs(t, result, 1, 2, 3, 4)
}

func TestApplyFiltersSortAscendingIsStable(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), "", "", SortAscending)
	// Products 1 and 3 share a price; catalog order must survive the sort.
	assertIDs(t, result, 5, 1, 3, 2, 4)
}

func TestApplyFiltersSortDescendingIsStable(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), "", "", SortDescending)
	assertIDs(t, result, 4, 2, 1, 3, 5)
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	ApplyFilters(catalog, "", "", SortAscending)
	assertIDs(t, catalog, 1, 2, 3, 4, 5)
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		raw  string
		want SortOrder
	}{
		{"asc", SortAscending},
		{" ASC ", SortAscending},
		{"desc", SortDescending},
		{"", SortNone},
		{"price", SortNone},
	}
	for _, tt := range tests {
		if got := ParseSortOrder(tt.raw); got != tt.want {
			t.Fatalf("ParseSortOrder(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
