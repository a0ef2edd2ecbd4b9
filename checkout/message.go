package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"lessence/cart"
	"lessence/models"
	"lessence/pricing"
)

// Message is the composed order summary handed to a MessagingChannel
type Message struct {
	Ref      uuid.UUID
	Customer models.Customer
	Text     string
	Encoded  string // Text in encodeURIComponent form
}

// ComposeSummary renders the human readable order summary the shop receives
func ComposeSummary(customer models.Customer, items []models.CartLineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order from %s*\n\n", customer.Name)
	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", customer.Phone)
	fmt.Fprintf(&b, "City: %s\n", customer.City)
	fmt.Fprintf(&b, "Address: %s\n\n", customer.Address)

	b.WriteString("*Order Details:*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s) - %s - %s x%d: %s\n",
			item.Name, item.Brand, item.Size, item.Delivery.Label(), item.Quantity,
			pricing.Format(item.LineTotal()))
	}

	fmt.Fprintf(&b, "\n*Total: %s*", pricing.Format(cart.Total(items)))
	return b.String()
}

// url.QueryEscape escapes a few characters encodeURIComponent leaves alone, and writes
// spaces as '+'.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a query parameter value
func EncodeURIComponent(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}
