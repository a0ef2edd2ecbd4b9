package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"lessence/models"
)

// HTTPReconciler posts the order's stock items to the backend's /api/orders endpoint.
// No timeout is set unless the supplied client has one.
type HTTPReconciler struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPReconciler creates a reconciler for the backend at baseURL
func NewHTTPReconciler(baseURL string, client *http.Client) *HTTPReconciler {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPReconciler{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

var _ StockReconciler = (*HTTPReconciler)(nil)

// Reconcile sends one request; any transport error or non-2xx status wraps
// ErrReconciliationFailed
func (r *HTTPReconciler) Reconcile(ctx context.Context, items []models.StockItem) error {
	body, err := json.Marshal(models.OrderRequest{Items: items})
	if err != nil {
		return errors.Wrap(err, "encode order")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build order request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReconciliationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: backend answered %s", ErrReconciliationFailed, resp.Status)
	}
	return nil
}
