package catalog

import (
	"sort"
	"strings"

	"lessence/models"
)

// FilterAndSort returns the products that pass every criterion, ordered by the requested
// sort. The input slice is never modified.
func FilterAndSort(products []models.Product, criteria models.FilterCriteria) []models.Product {
	query := strings.ToLower(criteria.SearchQuery)

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, criteria.Category, criteria.Gender, criteria.MaxPrice, query) {
			filtered = append(filtered, p)
		}
	}

	switch criteria.SortOrder {
	case models.SortPriceAscending:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case models.SortPriceDescending:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}
	return filtered
}

// Matches applies the four filter predicates to one product. query must already be lower-cased.
func Matches(p models.Product, category, gender string, maxPrice float64, query string) bool {
	if category != models.All && p.Category != category {
		return false
	}
	if gender != models.All && string(p.Gender) != gender {
		return false
	}
	if p.Price > maxPrice {
		return false
	}
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Notes), query)
}
