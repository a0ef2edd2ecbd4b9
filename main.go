// main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lessence/config"
	"lessence/controllers"
	"lessence/models"
	"lessence/repository"
	"lessence/routes"
	"lessence/utils"
)

func main() {
	// Load environment variables from .env file
	config.LoadDotEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	products, closeDB, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open product repository", zap.Error(err))
	}
	defer closeDB()

	tokens := utils.NewTokenIssuer(cfg.JWTSecret)
	admin := models.Admin{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash, Role: models.RoleAdmin}
	if admin.PasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set, admin login disabled")
	}

	// Initialize controllers
	adminController := controllers.NewAdminController(admin, tokens, logger)
	productController := controllers.NewProductController(products, logger)
	orderController := controllers.NewOrderController(products, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, tokens, adminController, productController, orderController)

	// The storefront is served from another origin
	handler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router)
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(cfg.Env == "development"))(handler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("server is running", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func openRepository(ctx context.Context, cfg config.Server, logger *zap.Logger) (repository.ProductRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := utils.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresProductRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, closer(logger, db), nil
	default:
		client, err := utils.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoProductRepository(client, cfg.MongoDatabase), mongoCloser(logger, client), nil
	}
}

func closer(logger *zap.Logger, db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close postgres", zap.Error(err))
		}
	}
}

func mongoCloser(logger *zap.Logger, client *mongo.Client) func() {
	return func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Warn("failed to disconnect mongo", zap.Error(err))
		}
	}
}
