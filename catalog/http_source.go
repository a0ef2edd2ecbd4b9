package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"lessence/models"
)

// HTTPSource reads products from the backend's /api/products endpoints
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates a source for the backend at baseURL
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

var _ Source = (*HTTPSource)(nil)

// Products fetches the full product list
func (s *HTTPSource) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.get(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product; a 404 is reported as ErrProductNotFound
func (s *HTTPSource) Product(ctx context.Context, id int) (models.Product, error) {
	var product models.Product
	if err := s.get(ctx, fmt.Sprintf("/api/products/%d", id), &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *HTTPSource) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}
