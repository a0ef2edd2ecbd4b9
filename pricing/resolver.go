// Package pricing computes cart unit prices from a product and the chosen variant.
package pricing

import (
	"github.com/shopspring/decimal"

	"lessence/models"
)

var (
	// LargeSizeMultiplier scales the 5ml base price to the 10ml bottle
	LargeSizeMultiplier = decimal.RequireFromString("1.8")
	// ExpressSurcharge is the flat fee the product page adds for express delivery
	ExpressSurcharge = decimal.RequireFromString("50.00")
)

// BasePrice returns the product's 5ml price as a decimal
func BasePrice(p models.Product) decimal.Decimal {
	return decimal.NewFromFloat(p.Price)
}

// SizePrice is the unit price for a size with no delivery fee. The catalog grid and the
// quick-view modal price items this way.
func SizePrice(p models.Product, size models.Size) decimal.Decimal {
	price := BasePrice(p)
	if size == models.Size10ml {
		price = price.Mul(LargeSizeMultiplier)
	}
	return price
}

// ResolveUnitPrice is the product page price: the size price plus the express surcharge
// when express delivery is selected. No rounding is applied.
func ResolveUnitPrice(p models.Product, size models.Size, delivery models.DeliveryOption) decimal.Decimal {
	price := SizePrice(p, size)
	if delivery == models.DeliveryExpress {
		price = price.Add(ExpressSurcharge)
	}
	return price
}

// Format renders an amount with two decimals and the shop currency
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " MAD"
}
