package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lessence/cart"
	"lessence/catalog"
	"lessence/models"
	"lessence/storage"
)

type recordingReconciler struct {
	calls [][]models.StockItem
	err   error
}

func (r *recordingReconciler) Reconcile(ctx context.Context, items []models.StockItem) error {
	r.calls = append(r.calls, items)
	return r.err
}

type recordingChannel struct {
	messages []Message
	err      error
}

func (c *recordingChannel) Deliver(ctx context.Context, msg Message) error {
	c.messages = append(c.messages, msg)
	return c.err
}

var customer = models.Customer{Name: "Amina", Phone: "0600000000", City: "Rabat", Address: "12 Rue Atlas"}

func filledCart(t *testing.T, kv storage.KeyValueStore) *cart.Store {
	t.Helper()
	products := catalog.NewStore([]models.Product{
		{ID: 1, Name: "Midnight Oud", Brand: "Maison Noir", Price: 100, Stock: 10},
		{ID: 2, Name: "Rose Petal", Brand: "Fleur", Price: 50, Stock: 3},
	})
	c := cart.NewStore(context.Background(), products, kv, zap.NewNop())
	ctx := context.Background()

	_, err := c.AddItem(ctx, 1, cart.WithSize(models.Size10ml), cart.WithUnitPrice(decimal.NewFromInt(180)))
	require.NoError(t, err)
	_, err = c.AddItem(ctx, 1, cart.WithSize(models.Size10ml))
	require.NoError(t, err)
	_, err = c.AddItem(ctx, 2, cart.WithDelivery(models.DeliveryExpress), cart.WithUnitPrice(decimal.NewFromInt(100)))
	require.NoError(t, err)
	return c
}

const expectedSummary = "*New Order from Amina*\n\n" +
	"*Customer Details:*\n" +
	"Name: Amina\n" +
	"Phone: 0600000000\n" +
	"City: Rabat\n" +
	"Address: 12 Rue Atlas\n\n" +
	"*Order Details:*\n" +
	"- Midnight Oud (Maison Noir) - 10ml - Standard x2: 360.00 MAD\n" +
	"- Rose Petal (Fleur) - 5ml - Express x1: 100.00 MAD\n" +
	"\n*Total: 460.00 MAD*"

func TestCheckout_EmptyCartNeverCallsOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	c := cart.NewStore(context.Background(), catalog.NewStore(nil), kv, zap.NewNop())
	rec := &recordingReconciler{}
	ch := &recordingChannel{}

	res, err := NewOrchestrator(c, rec, ch, zap.NewNop()).Checkout(context.Background(), customer)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.Equal(t, StateAborted, res.State)
	assert.Equal(t, []State{StateValidating, StateAborted}, res.Trace)
	assert.Empty(t, rec.calls)
	assert.Empty(t, ch.messages)

	_, found, _ := kv.Get(context.Background(), cart.Slot)
	assert.False(t, found)
}

func TestCheckout_HappyPath(t *testing.T) {
	kv := storage.NewMemoryStore()
	c := filledCart(t, kv)
	rec := &recordingReconciler{}
	ch := &recordingChannel{}

	res, err := NewOrchestrator(c, rec, ch, zap.NewNop()).Checkout(context.Background(), customer)
	require.NoError(t, err)

	assert.Equal(t, StateCleared, res.State)
	assert.Equal(t, []State{
		StateValidating, StateReconcilingStock, StateComposingMessage, StateHandoffRequested, StateCleared,
	}, res.Trace)
	assert.Empty(t, res.Warnings)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, []models.StockItem{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}, rec.calls[0])

	require.Len(t, ch.messages, 1)
	msg := ch.messages[0]
	assert.Equal(t, expectedSummary, msg.Text)
	assert.Equal(t, EncodeURIComponent(expectedSummary), msg.Encoded)
	assert.Equal(t, customer, msg.Customer)
	assert.NotEqual(t, msg.Ref.String(), "00000000-0000-0000-0000-000000000000")

	assert.True(t, c.IsEmpty())
	data, _, _ := kv.Get(context.Background(), cart.Slot)
	assert.JSONEq(t, `[]`, string(data))
}

func TestCheckout_ReconcileFailureStillClears(t *testing.T) {
	c := filledCart(t, storage.NewMemoryStore())
	rec := &recordingReconciler{err: ErrReconciliationFailed}
	ch := &recordingChannel{}

	res, err := NewOrchestrator(c, rec, ch, zap.NewNop()).Checkout(context.Background(), customer)
	require.NoError(t, err)

	assert.Equal(t, StateCleared, res.State)
	assert.Equal(t, []string{ReconcileWarning}, res.Warnings)
	assert.Len(t, ch.messages, 1)
	assert.True(t, c.IsEmpty())
}

func TestCheckout_HandoffFailureStillClears(t *testing.T) {
	c := filledCart(t, storage.NewMemoryStore())
	rec := &recordingReconciler{}
	ch := &recordingChannel{err: errors.New("no browser")}

	res, err := NewOrchestrator(c, rec, ch, zap.NewNop()).Checkout(context.Background(), customer)
	require.NoError(t, err)

	assert.Equal(t, StateCleared, res.State)
	assert.Empty(t, res.Warnings)
	assert.Len(t, rec.calls, 1)
	assert.True(t, c.IsEmpty())
}

func TestCheckout_AgainstBackend(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := filledCart(t, storage.NewMemoryStore())
	var opened []string
	wa := NewWhatsAppChannel("", func(u string) error {
		opened = append(opened, u)
		return nil
	})

	res, err := NewOrchestrator(c, NewHTTPReconciler(srv.URL, srv.Client()), wa, zap.NewNop()).
		Checkout(context.Background(), customer)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, []string{ReconcileWarning}, res.Warnings)
	require.Len(t, opened, 1)
	assert.Equal(t, "https://wa.me/212617515466?text="+EncodeURIComponent(expectedSummary), opened[0])
}
