package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"lessence/models"
	"lessence/utils"
)

// AdminController authenticates the back-office account
type AdminController struct {
	Admin  models.Admin
	Tokens *utils.TokenIssuer
	logger *zap.Logger
}

// NewAdminController creates a new AdminController for the configured admin
func NewAdminController(admin models.Admin, tokens *utils.TokenIssuer, logger *zap.Logger) *AdminController {
	return &AdminController{Admin: admin, Tokens: tokens, logger: logger}
}

// Login handles admin login and returns a bearer token
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if ac.Admin.PasswordHash == "" ||
		!strings.EqualFold(creds.Email, ac.Admin.Email) ||
		!utils.CheckPassword(ac.Admin.PasswordHash, creds.Password) {
		ac.logger.Warn("admin login rejected", zap.String("email", creds.Email))
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := ac.Tokens.Generate(ac.Admin.Email, models.RoleAdmin)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
