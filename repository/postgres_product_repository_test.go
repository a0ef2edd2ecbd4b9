package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/go-faster/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a scratch database named by TEST_DATABASE_URL; the products table is
// dropped and recreated.
func TestPostgresProductRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `DROP TABLE IF EXISTS products`)
	require.NoError(t, err)
	r := NewPostgresProductRepository(db)
	require.NoError(t, r.Migrate(ctx))

	_, err = db.ExecContext(ctx, `INSERT INTO products (id, name, brand, category, gender, price, stock, notes, image)
		VALUES (1, 'Midnight Oud', 'Maison Noir', 'Oud', 'Men', 100, 4, 'Saffron', 'oud.jpg'),
		       (2, 'Rose Petal', 'Fleur', 'Floral', 'Women', 50, 8, 'Rose', 'rose.jpg')`)
	require.NoError(t, err)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Midnight Oud", all[0].Name)
	assert.Equal(t, "", all[0].Description)

	floral, err := r.ListByCategory(ctx, "Floral")
	require.NoError(t, err)
	require.Len(t, floral, 1)
	assert.Equal(t, 2, floral[0].ID)

	_, err = r.GetByID(ctx, 9)
	assert.True(t, errors.Is(err, ErrProductNotFound))

	require.NoError(t, r.DecrementStock(ctx, 1, 6))
	p, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, -2, p.Stock)

	require.NoError(t, r.SetStock(ctx, 1, 100))
	assert.True(t, errors.Is(r.SetStock(ctx, 9, 1), ErrProductNotFound))
}
