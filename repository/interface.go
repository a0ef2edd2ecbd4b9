// Package repository stores the product catalog and its stock counts for the backend.
package repository

import (
	"context"

	"github.com/go-faster/errors"

	"lessence/models"
)

// ErrProductNotFound is returned when no product has the requested id
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the product operations the backend serves
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	// DecrementStock subtracts quantity from a product's stock. An unknown id is ignored
	// and the stock may go negative.
	DecrementStock(ctx context.Context, id, quantity int) error
	// SetStock overwrites a product's stock
	SetStock(ctx context.Context, id, stock int) error
}
