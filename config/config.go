// Package config reads the backend and storefront settings from the environment, after
// loading a .env file when one exists.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Database drivers for the backend product repository
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Cart slot backends for the storefront
const (
	CartBackendFile  = "file"
	CartBackendMongo = "mongo"
)

// Messaging channels for the storefront
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// Server configures the backend API
type Server struct {
	Port              int
	Env               string
	DBDriver          string
	MongoURI          string
	MongoDatabase     string
	DatabaseURL       string
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
}

// Storefront configures the command-line storefront
type Storefront struct {
	Env            string
	APIURL         string
	CartBackend    string
	CartDir        string
	MongoURI       string
	MongoDatabase  string
	Channel        string
	WhatsAppNumber string
	SendGridAPIKey string
	EmailSender    string
	OrderEmailTo   string
}

// LoadDotEnv loads .env into the environment; a missing file is not an error.
// Variables already set are left alone.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// LoadServer reads the backend settings
func LoadServer() (Server, error) {
	cfg := Server{
		Env:               getenv("ENV", "production"),
		DBDriver:          getenv("DB_DRIVER", DriverMongo),
		MongoURI:          getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getenv("MONGO_DATABASE", "perfume_shop"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        getenv("ADMIN_EMAIL", "admin@lessence.ma"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	rawPort := getenv("PORT", "5000")
	port, err := strconv.Atoi(rawPort)
	if err != nil || port <= 0 || port > 65535 {
		return Server{}, errors.Errorf("invalid PORT %q", rawPort)
	}
	cfg.Port = port

	switch cfg.DBDriver {
	case DriverMongo:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Server{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return Server{}, errors.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		return Server{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadStorefront reads the storefront settings
func LoadStorefront() (Storefront, error) {
	cfg := Storefront{
		Env:            getenv("ENV", "production"),
		APIURL:         getenv("STOREFRONT_API_URL", "http://127.0.0.1:5000"),
		CartBackend:    getenv("STOREFRONT_CART_BACKEND", CartBackendFile),
		CartDir:        os.Getenv("STOREFRONT_CART_DIR"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getenv("MONGO_DATABASE", "perfume_shop"),
		Channel:        getenv("STOREFRONT_CHANNEL", ChannelWhatsApp),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "212617515466"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),
		OrderEmailTo:   os.Getenv("ORDER_EMAIL_TO"),
	}

	if cfg.CartDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.CartDir = filepath.Join(dir, "lessence")
	}

	switch cfg.CartBackend {
	case CartBackendFile, CartBackendMongo:
	default:
		return Storefront{}, errors.Errorf("unknown STOREFRONT_CART_BACKEND %q", cfg.CartBackend)
	}

	switch cfg.Channel {
	case ChannelWhatsApp:
	case ChannelEmail:
		if cfg.OrderEmailTo == "" {
			return Storefront{}, errors.New("ORDER_EMAIL_TO is required when STOREFRONT_CHANNEL=email")
		}
	default:
		return Storefront{}, errors.Errorf("unknown STOREFRONT_CHANNEL %q", cfg.Channel)
	}
	return cfg, nil
}
