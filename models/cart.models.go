package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Size is the bottle size of a cart line
type Size string

const (
	Size5ml  Size = "5ml"
	Size10ml Size = "10ml"
)

// ParseSize validates a size string
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case Size5ml, Size10ml:
		return Size(s), nil
	}
	return "", errors.Errorf("unknown size %q", s)
}

// DeliveryOption is the shipping speed chosen on the product page
type DeliveryOption string

const (
	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
)

// ParseDeliveryOption validates a delivery option string
func ParseDeliveryOption(s string) (DeliveryOption, error) {
	switch DeliveryOption(s) {
	case DeliveryStandard, DeliveryExpress:
		return DeliveryOption(s), nil
	}
	return "", errors.Errorf("unknown delivery option %q", s)
}

// Label is the human readable name used in order summaries
func (d DeliveryOption) Label() string {
	if d == DeliveryExpress {
		return "Express"
	}
	return "Standard"
}

// VariantKey identifies a cart line: the same product in the same size with the same
// delivery option is always one line.
type VariantKey struct {
	ProductID int
	Size      Size
	Delivery  DeliveryOption
}

// String renders the key as "<id>-<size>-<delivery>"
func (k VariantKey) String() string {
	return fmt.Sprintf("%d-%s-%s", k.ProductID, k.Size, k.Delivery)
}

// ParseVariantKey reverses VariantKey.String. Size and delivery are the last two segments,
// so the product id may itself carry a sign.
func ParseVariantKey(s string) (VariantKey, error) {
	rest, delivery, ok := cutLast(s, "-")
	if !ok {
		return VariantKey{}, errors.Errorf("malformed cart item key %q", s)
	}
	rawID, rawSize, ok := cutLast(rest, "-")
	if !ok || rawID == "" {
		return VariantKey{}, errors.Errorf("malformed cart item key %q", s)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return VariantKey{}, errors.Wrapf(err, "malformed product id in %q", s)
	}
	size, err := ParseSize(rawSize)
	if err != nil {
		return VariantKey{}, err
	}
	option, err := ParseDeliveryOption(delivery)
	if err != nil {
		return VariantKey{}, err
	}
	return VariantKey{ProductID: id, Size: size, Delivery: option}, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// CartLineItem represents one line in the shopping cart
type CartLineItem struct {
	ProductID int             `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Gender    Gender          `json:"gender"`
	Notes     string          `json:"notes"`
	Image     string          `json:"image"`
	Size      Size            `json:"size"`
	Delivery  DeliveryOption  `json:"delivery"`
	UnitPrice decimal.Decimal `json:"price"` // frozen when the line was created
	Quantity  int             `json:"quantity"`
}

// Key returns the variant key of the line
func (i CartLineItem) Key() VariantKey {
	return VariantKey{ProductID: i.ProductID, Size: i.Size, Delivery: i.Delivery}
}

// LineTotal is unit price times quantity
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewCartLineItem copies the display fields of a product into a line with quantity 1
func NewCartLineItem(p Product, size Size, delivery DeliveryOption, unitPrice decimal.Decimal) CartLineItem {
	return CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.Category,
		Gender:    p.Gender,
		Notes:     p.Notes,
		Image:     p.Image,
		Size:      size,
		Delivery:  delivery,
		UnitPrice: unitPrice,
		Quantity:  1,
	}
}
