// controllers/order.go
package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"lessence/repository"
)

// orderItem is one line of POST /api/orders. A missing quantity counts as 1.
type orderItem struct {
	ID       int  `json:"id"`
	Quantity *int `json:"quantity"`
}

type orderRequest struct {
	Items []orderItem `json:"items"`
}

// OrderController handles order-related requests
type OrderController struct {
	Products repository.ProductRepository
	logger   *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(products repository.ProductRepository, logger *zap.Logger) *OrderController {
	return &OrderController{Products: products, logger: logger}
}

// CreateOrder decrements the stock of every ordered product. Unknown ids are skipped and
// stock is not checked, so counts can go negative.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, item := range req.Items {
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		if err := oc.Products.DecrementStock(r.Context(), item.ID, quantity); err != nil {
			oc.logger.Error("failed to update product stock", zap.Int("product_id", item.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	oc.logger.Info("order processed", zap.Int("items", len(req.Items)))
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Order processed successfully"})
}
