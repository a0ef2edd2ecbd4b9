// Package cart owns the shopping cart: line identity, quantity merging and write-through
// persistence into a key-value slot.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"lessence/models"
	"lessence/pricing"
	"lessence/storage"
)

// Slot is the key-value slot holding the serialized cart
const Slot = "cart"

// ErrProductNotFound is returned by AddItem when the catalog has no such product.
// Nothing is added.
var ErrProductNotFound = errors.New("product not found in catalog")

// Catalog resolves product ids for AddItem
type Catalog interface {
	Product(id int) (models.Product, bool)
}

// Store is the single source of truth for cart contents. Every mutation holds the lock
// for its whole duration and writes the full cart to the slot before returning.
type Store struct {
	mu      sync.Mutex
	items   []models.CartLineItem
	catalog Catalog
	kv      storage.KeyValueStore
	logger  *zap.Logger
}

// NewStore rehydrates the cart from kv. A missing or unreadable slot yields an empty cart.
func NewStore(ctx context.Context, catalog Catalog, kv storage.KeyValueStore, logger *zap.Logger) *Store {
	s := &Store{catalog: catalog, kv: kv, logger: logger}
	s.items = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []models.CartLineItem {
	data, found, err := s.kv.Get(ctx, Slot)
	if err != nil {
		s.logger.Debug("cart slot unreadable, starting empty", zap.Error(err))
		return nil
	}
	if !found || len(data) == 0 {
		return nil
	}
	items, err := decode(data)
	if err != nil {
		s.logger.Debug("cart slot corrupt, starting empty", zap.Error(err))
		return nil
	}
	return items
}

func decode(data []byte) ([]models.CartLineItem, error) {
	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	seen := make(map[models.VariantKey]bool, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.Errorf("cart line %s has quantity %d", item.Key(), item.Quantity)
		}
		if seen[item.Key()] {
			return nil, errors.Errorf("cart line %s appears twice", item.Key())
		}
		seen[item.Key()] = true
	}
	return items, nil
}

// persist writes the whole cart. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []models.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.kv.Set(ctx, Slot, data); err != nil {
		s.logger.Warn("failed to save cart", zap.Error(err))
		return errors.Wrap(err, "save cart")
	}
	return nil
}

type addRequest struct {
	size      models.Size
	delivery  models.DeliveryOption
	unitPrice *decimal.Decimal
}

// AddOption customizes AddItem
type AddOption func(*addRequest)

// WithSize selects the bottle size (default 5ml)
func WithSize(size models.Size) AddOption {
	return func(r *addRequest) { r.size = size }
}

// WithDelivery selects the delivery option (default standard)
func WithDelivery(d models.DeliveryOption) AddOption {
	return func(r *addRequest) { r.delivery = d }
}

// WithUnitPrice sets the price frozen on a new line (default: the product's base price)
func WithUnitPrice(price decimal.Decimal) AddOption {
	return func(r *addRequest) { r.unitPrice = &price }
}

// AddItem adds one unit of a product variant. If a line with the same variant key exists its
// quantity is incremented and its unit price is left unchanged; otherwise a new line is
// appended. It returns the resulting line.
func (s *Store) AddItem(ctx context.Context, productID int, opts ...AddOption) (models.CartLineItem, error) {
	req := addRequest{size: models.Size5ml, delivery: models.DeliveryStandard}
	for _, opt := range opts {
		opt(&req)
	}

	product, ok := s.catalog.Product(productID)
	if !ok {
		s.logger.Warn("add to cart for unknown product", zap.Int("product_id", productID))
		return models.CartLineItem{}, errors.Wrapf(ErrProductNotFound, "product %d", productID)
	}

	unitPrice := pricing.BasePrice(product)
	if req.unitPrice != nil && !req.unitPrice.IsZero() {
		unitPrice = *req.unitPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.VariantKey{ProductID: productID, Size: req.size, Delivery: req.delivery}
	var line models.CartLineItem
	if i := s.indexOf(key); i >= 0 {
		s.items[i].Quantity++
		line = s.items[i]
	} else {
		line = models.NewCartLineItem(product, req.size, req.delivery, unitPrice)
		s.items = append(s.items, line)
	}

	s.logger.Info("item added to cart",
		zap.String("key", key.String()),
		zap.Int("quantity", line.Quantity),
	)
	return line, s.persist(ctx)
}

// RemoveItem deletes the line with the given key if present
func (s *Store) RemoveItem(ctx context.Context, key models.VariantKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
	return s.persist(ctx)
}

func (s *Store) remove(key models.VariantKey) {
	if i := s.indexOf(key); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// AdjustQuantity changes a line's quantity by delta. A result of zero or less removes the
// line. An unknown key is ignored.
func (s *Store) AdjustQuantity(ctx context.Context, key models.VariantKey, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil
	}
	if q := s.items[i].Quantity + delta; q <= 0 {
		s.remove(key)
	} else {
		s.items[i].Quantity = q
	}
	return s.persist(ctx)
}

// Clear empties the cart and persists the empty state
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist(ctx)
}

func (s *Store) indexOf(key models.VariantKey) int {
	for i, item := range s.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// Items returns a copy of the lines in insertion order
func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the line with the given key
func (s *Store) Item(key models.VariantKey) (models.CartLineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(key); i >= 0 {
		return s.items[i], true
	}
	return models.CartLineItem{}, false
}

// IsEmpty reports whether the cart has no lines
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// TotalItemCount is the sum of all line quantities
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// TotalAmount is the sum of unit price times quantity over all lines
func (s *Store) TotalAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.items)
}

// Total sums the line totals of items
func Total(items []models.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// StockItems lists the (product, quantity) pairs of every line
func StockItems(items []models.CartLineItem) []models.StockItem {
	out := make([]models.StockItem, len(items))
	for i, item := range items {
		out[i] = models.StockItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return out
}
