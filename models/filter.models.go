package models

// All is the wildcard filter value that matches every category or gender
const All = "all"

// DefaultMaxPrice is the price ceiling before the user moves the slider
const DefaultMaxPrice = 1000

// SortOrder selects how a filtered catalog is ordered
type SortOrder string

const (
	SortFeatured        SortOrder = "featured"
	SortPriceAscending  SortOrder = "price-ascending"
	SortPriceDescending SortOrder = "price-descending"
)

// ParseSortOrder maps user input to a SortOrder; unknown values fall back to featured
func ParseSortOrder(s string) SortOrder {
	switch s {
	case string(SortPriceAscending), "price-low":
		return SortPriceAscending
	case string(SortPriceDescending), "price-high":
		return SortPriceDescending
	default:
		return SortFeatured
	}
}

// FilterCriteria holds the storefront filter inputs
type FilterCriteria struct {
	Category    string    `json:"category"`
	Gender      string    `json:"gender"`
	MaxPrice    float64   `json:"max_price"`
	SearchQuery string    `json:"search_query"`
	SortOrder   SortOrder `json:"sort_order"`
}

// DefaultFilterCriteria returns the criteria a fresh storefront starts with
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Category:  All,
		Gender:    All,
		MaxPrice:  DefaultMaxPrice,
		SortOrder: SortFeatured,
	}
}
