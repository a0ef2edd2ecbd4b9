// Package catalog holds the session's product snapshot and the filter/sort engine over it.
package catalog

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"lessence/models"
)

var (
	// ErrSourceUnavailable means the product list could not be fetched
	ErrSourceUnavailable = errors.New("product source unavailable")
	// ErrProductNotFound means the source has no product with the requested id
	ErrProductNotFound = errors.New("product not found")
)

// Source is where the catalog comes from
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int) (models.Product, error)
}

// Store is a read-only snapshot of the catalog. It is safe for concurrent reads.
type Store struct {
	products []models.Product
	byID     map[int]int
}

// NewStore builds a snapshot from a product list
func NewStore(products []models.Product) *Store {
	s := &Store{
		products: make([]models.Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
	}
	return s
}

// Load fetches the catalog once. When the source fails the returned store is empty and
// the error wraps ErrSourceUnavailable so the caller can render a failure state.
func Load(ctx context.Context, src Source, logger *zap.Logger) (*Store, error) {
	products, err := src.Products(ctx)
	if err != nil {
		logger.Warn("error loading products", zap.Error(err))
		return NewStore(nil), fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	logger.Debug("catalog loaded", zap.Int("products", len(products)))
	return NewStore(products), nil
}

// Products returns a copy of every product in source order
func (s *Store) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product looks up a product by id
func (s *Store) Product(id int) (models.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

// Len is the number of products in the snapshot
func (s *Store) Len() int { return len(s.products) }

// Filter runs FilterAndSort over the snapshot
func (s *Store) Filter(criteria models.FilterCriteria) []models.Product {
	return FilterAndSort(s.products, criteria)
}

// Categories returns "all" followed by each distinct category in first-seen order
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	categories := []string{models.All}
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// Genders returns the gender filter choices with the wildcard first
func Genders() []string {
	out := []string{models.All}
	for _, g := range models.Genders {
		out = append(out, string(g))
	}
	return out
}
