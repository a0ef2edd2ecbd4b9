package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lessence/models"
	"lessence/repository"
)

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError answers with {"error": msg}
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ProductController handles product-related requests
type ProductController struct {
	Products repository.ProductRepository
	logger   *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(products repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{Products: products, logger: logger}
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Products.List(r.Context())
	if err != nil {
		pc.logger.Error("error fetching products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by its numeric id
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := pc.Products.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		pc.logger.Error("error fetching product", zap.Int("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetProductsByCategory retrieves the products of one category; an unknown category
// yields an empty list
func (pc *ProductController) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	products, err := pc.Products.ListByCategory(r.Context(), category)
	if err != nil {
		pc.logger.Error("error fetching category", zap.String("category", category), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// UpdateStock overwrites a product's stock (Admin only)
func (pc *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req models.RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err = pc.Products.SetStock(r.Context(), id, req.Stock)
	if errors.Is(err, repository.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		pc.logger.Error("error updating stock", zap.Int("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pc.logger.Info("product restocked", zap.Int("product_id", id), zap.Int("stock", req.Stock))
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "stock": req.Stock})
}
