// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"lessence/controllers"
	"lessence/middleware"
	"lessence/utils"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, tokens *utils.TokenIssuer, adminController *controllers.AdminController, productController *controllers.ProductController, orderController *controllers.OrderController) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", controllers.Health).Methods(http.MethodGet)

	// Product routes
	api.HandleFunc("/products", productController.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", productController.GetProductByID).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{category}", productController.GetProductsByCategory).Methods(http.MethodGet)

	// Order routes
	api.HandleFunc("/orders", orderController.CreateOrder).Methods(http.MethodPost)

	// Admin routes
	api.HandleFunc("/admin/login", adminController.Login).Methods(http.MethodPost)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware(tokens))
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/products/{id:[0-9]+}/stock", productController.UpdateStock).Methods(http.MethodPut)
}
