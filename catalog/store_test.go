package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lessence/models"
)

func productServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "boom", status)
			return
		}
		switch r.URL.Path {
		case "/api/products":
			json.NewEncoder(w).Encode(sampleCatalog())
		case "/api/products/3":
			json.NewEncoder(w).Encode(sampleCatalog()[2])
		default:
			http.Error(w, `{"error": "Product not found"}`, http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad_FromHTTPSource(t *testing.T) {
	srv := productServer(t, http.StatusOK)

	store, err := Load(context.Background(), NewHTTPSource(srv.URL+"/", nil), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 5, store.Len())

	p, ok := store.Product(4)
	require.True(t, ok)
	assert.Equal(t, "Amber Night", p.Name)

	_, ok = store.Product(99)
	assert.False(t, ok)
}

func TestLoad_SourceFailureDegradesToEmpty(t *testing.T) {
	srv := productServer(t, http.StatusInternalServerError)

	store, err := Load(context.Background(), NewHTTPSource(srv.URL, nil), zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Filter(models.DefaultFilterCriteria()))
	assert.Equal(t, []string{"all"}, store.Categories())
}

func TestLoad_UnreachableSource(t *testing.T) {
	srv := productServer(t, http.StatusOK)
	url := srv.URL
	srv.Close()

	store, err := Load(context.Background(), NewHTTPSource(url, nil), zap.NewNop())
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Equal(t, 0, store.Len())
}

func TestHTTPSource_Product(t *testing.T) {
	srv := productServer(t, http.StatusOK)
	src := NewHTTPSource(srv.URL, nil)

	p, err := src.Product(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Citrus Wave", p.Name)

	_, err = src.Product(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestStore_Categories(t *testing.T) {
	store := NewStore(sampleCatalog())

	assert.Equal(t, []string{"all", "Oud", "Floral", "Fresh", "Oriental"}, store.Categories())
	assert.Equal(t, []string{"all", "Men", "Women", "Unisex"}, Genders())
}

func TestStore_ProductsIsACopy(t *testing.T) {
	store := NewStore(sampleCatalog())

	products := store.Products()
	products[0].Price = 1

	p, _ := store.Product(1)
	assert.Equal(t, float64(100), p.Price)
}
