package repository

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"

	"lessence/models"
)

// ProductsSchema creates the products table used by PostgresProductRepository
const ProductsSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		brand       TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		gender      TEXT NOT NULL DEFAULT 'Unisex',
		price       DOUBLE PRECISION NOT NULL,
		stock       INTEGER NOT NULL DEFAULT 0,
		notes       TEXT NOT NULL DEFAULT '',
		image       TEXT NOT NULL DEFAULT '',
		description TEXT
	)
`

const productColumns = `id, name, brand, category, gender, price, stock, notes, image, COALESCE(description, '')`

// PostgresProductRepository keeps products in a PostgreSQL table through database/sql
// and the pgx driver
type PostgresProductRepository struct {
	DB *sql.DB
}

// NewPostgresProductRepository creates a repository over db
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{DB: db}
}

var _ ProductRepository = (*PostgresProductRepository)(nil)

// Migrate creates the products table if it does not exist
func (r *PostgresProductRepository) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, ProductsSchema); err != nil {
		return errors.Wrap(err, "create products table")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (models.Product, error) {
	var p models.Product
	var gender string
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &gender, &p.Price, &p.Stock, &p.Notes, &p.Image, &p.Description)
	p.Gender = models.Gender(gender)
	return p, err
}

func (r *PostgresProductRepository) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read products")
	}
	return products, nil
}

// List returns every product ordered by id
func (r *PostgresProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// ListByCategory returns the products of one category
func (r *PostgresProductRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY id`, category)
}

// GetByID returns ErrProductNotFound when no row matches
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, errors.Wrapf(err, "get product %d", id)
	}
	return p, nil
}

// DecrementStock subtracts quantity from the stock column
func (r *PostgresProductRepository) DecrementStock(ctx context.Context, id, quantity int) error {
	if _, err := r.DB.ExecContext(ctx, `UPDATE products SET stock = stock - $1 WHERE id = $2`, quantity, id); err != nil {
		return errors.Wrapf(err, "decrement stock of product %d", id)
	}
	return nil
}

// SetStock overwrites the stock column
func (r *PostgresProductRepository) SetStock(ctx context.Context, id, stock int) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE products SET stock = $1 WHERE id = $2`, stock, id)
	if err != nil {
		return errors.Wrapf(err, "set stock of product %d", id)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "set stock")
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
