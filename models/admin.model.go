package models

// Admin is the single back-office account allowed to restock products
type Admin struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// LoginRequest is the body of POST /api/admin/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RoleAdmin is the role carried by admin tokens
const RoleAdmin = "admin"
