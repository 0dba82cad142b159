package catalog

import (
	"sort"
	"strings"
)

// SortOrder selects how a filtered listing is ordered by price.
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder maps a raw control value onto a SortOrder. Unknown values
// mean no sorting, matching how an unset select control behaves.
func ParseSortOrder(value string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc":
		return SortAscending
	case "desc":
		return SortDescending
	}
	return SortNone
}

// ApplyFilters returns the subset of products matching the category and title
// search, ordered by price when requested. Pure: the input slice is never
// mutated, and ties in price preserve catalog order.
func ApplyFilters(products []Product, category, search string, order SortOrder) []Product {
	filtered := make([]Product, 0, len(products))

	category = strings.TrimSpace(category)
	for _, product := range products {
		if category != "" && !strings.EqualFold(product.Category, category) {
			continue
		}
		filtered = append(filtered, product)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" {
		matched := filtered[:0]
		for _, product := range filtered {
			if strings.Contains(strings.ToLower(product.Title), search) {
				matched = append(matched, product)
			}
		}
		filtered = matched
	}

	switch order {
	case SortAscending:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortDescending:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	return filtered
}
