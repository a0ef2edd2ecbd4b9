package repository

import (
	"context"
	"sync"

	"lessence/models"
)

// MemoryProductRepository keeps products in memory, in insertion order
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewMemoryProductRepository creates a repository holding a copy of products
func NewMemoryProductRepository(products ...models.Product) *MemoryProductRepository {
	return &MemoryProductRepository{products: append([]models.Product(nil), products...)}
}

var _ ProductRepository = (*MemoryProductRepository)(nil)

// List returns every product in insertion order
func (r *MemoryProductRepository) List(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product{}, r.products...), nil
}

// ListByCategory returns the products whose category matches exactly
func (r *MemoryProductRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Product{}
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID returns ErrProductNotFound for an unknown id
func (r *MemoryProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// DecrementStock lowers a product's stock; unknown ids are ignored
func (r *MemoryProductRepository) DecrementStock(ctx context.Context, id, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.products[i].Stock -= quantity
	}
	return nil
}

// SetStock overwrites a product's stock
func (r *MemoryProductRepository) SetStock(ctx context.Context, id, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products[i].Stock = stock
	return nil
}

func (r *MemoryProductRepository) indexOf(id int) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
