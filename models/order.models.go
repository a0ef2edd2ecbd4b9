package models

// StockItem is one (product, quantity) pair sent for stock reconciliation
type StockItem struct {
	ProductID int `bson:"id" json:"id"`
	Quantity  int `bson:"quantity" json:"quantity"`
}

// OrderRequest is the body of POST /api/orders
type OrderRequest struct {
	Items []StockItem `json:"items"`
}

// Customer holds the delivery details collected at checkout
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// RestockRequest is the body of PUT /api/admin/products/{id}/stock
type RestockRequest struct {
	Stock int `json:"stock"`
}
