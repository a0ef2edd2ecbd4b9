package models

import (
	"fmt"
	"strings"
)

// Gender is the closed set of audiences a fragrance is marketed to
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// Genders lists the gender filter values in display order
var Genders = []Gender{GenderMen, GenderWomen, GenderUnisex}

// LowStockThreshold is the largest stock count still shown as "only N left"
const LowStockThreshold = 5

// StockLevel classifies a product's stock for display
type StockLevel string

const (
	StockOut StockLevel = "out-of-stock"
	StockLow StockLevel = "low-stock"
	StockIn  StockLevel = "in-stock"
)

// Product represents a fragrance in the catalog
type Product struct {
	ID          int     `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Brand       string  `bson:"brand" json:"brand"`
	Category    string  `bson:"category" json:"category"`
	Gender      Gender  `bson:"gender" json:"gender"`
	Price       float64 `bson:"price" json:"price"` // base price of the 5ml variant
	Stock       int     `bson:"stock" json:"stock"`
	Notes       string  `bson:"notes" json:"notes"`
	Image       string  `bson:"image" json:"image"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// StockLevel reports whether the product is sold out, nearly sold out or available
func (p Product) StockLevel() StockLevel {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock <= LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// InStock reports whether the product can be added to a cart from the storefront
func (p Product) InStock() bool {
	return p.Stock > 0
}

// DisplayDescription returns the stored description or a generated one
func (p Product) DisplayDescription() string {
	if p.Description != "" {
		return p.Description
	}
	return fmt.Sprintf(
		"Experience the luxurious essence of %s by %s. This exquisite %s fragrance features a harmonious blend of %s, crafted to leave a lasting impression. Perfect for those who appreciate the finer things in life.",
		p.Name, p.Brand, strings.ToLower(p.Category), strings.ToLower(p.Notes),
	)
}
