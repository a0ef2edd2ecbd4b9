// Package checkout runs a single checkout attempt: validate the cart, tell the backend about
// the stock leaving, compose the order summary, hand it to a messaging channel and clear
// the cart.
package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lessence/cart"
	"lessence/models"
)

// State is a step of the checkout state machine
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateReconcilingStock State = "reconciling-stock"
	StateComposingMessage State = "composing-message"
	StateHandoffRequested State = "handoff-requested"
	StateCleared          State = "cleared"
	StateAborted          State = "aborted"
)

var (
	// ErrEmptyCart aborts a checkout before any external call
	ErrEmptyCart = errors.New("cart is empty")
	// ErrReconciliationFailed wraps stock service errors and non-success responses
	ErrReconciliationFailed = errors.New("stock reconciliation failed")
)

// EmptyCartMessage is shown to the user when checkout is attempted with nothing in the cart
const EmptyCartMessage = "Your cart is empty!"

// ReconcileWarning is shown to the user when the stock service call fails
const ReconcileWarning = "Warning: Issue updating stock, proceed with caution"

// Cart is the part of the cart store checkout needs
type Cart interface {
	Items() []models.CartLineItem
	Clear(ctx context.Context) error
}

// StockReconciler tells the backend which quantities left the shop
type StockReconciler interface {
	Reconcile(ctx context.Context, items []models.StockItem) error
}

// MessagingChannel delivers a composed order to the shop
type MessagingChannel interface {
	Deliver(ctx context.Context, msg Message) error
}

// Result describes how a checkout attempt ended
type Result struct {
	State    State
	Trace    []State
	Warnings []string
	Message  Message
}

// Orchestrator runs checkout attempts. Every external call is made exactly once.
type Orchestrator struct {
	cart       Cart
	reconciler StockReconciler
	channel    MessagingChannel
	logger     *zap.Logger
}

// NewOrchestrator wires the orchestrator to its collaborators
func NewOrchestrator(c Cart, reconciler StockReconciler, channel MessagingChannel, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{cart: c, reconciler: reconciler, channel: channel, logger: logger}
}

// Checkout runs one attempt for customer. The only error it returns is ErrEmptyCart, with
// the result in StateAborted; every other failure is logged or turned into a warning and
// the attempt always ends in StateCleared.
func (o *Orchestrator) Checkout(ctx context.Context, customer models.Customer) (Result, error) {
	res := Result{State: StateIdle}
	step := func(s State) {
		res.State = s
		res.Trace = append(res.Trace, s)
	}

	step(StateValidating)
	items := o.cart.Items()
	if len(items) == 0 {
		step(StateAborted)
		o.logger.Info("checkout aborted, cart is empty")
		return res, ErrEmptyCart
	}

	step(StateReconcilingStock)
	if err := o.reconciler.Reconcile(ctx, cart.StockItems(items)); err != nil {
		o.logger.Warn("failed to update stock", zap.Error(err))
		res.Warnings = append(res.Warnings, ReconcileWarning)
	}

	step(StateComposingMessage)
	text := ComposeSummary(customer, items)
	res.Message = Message{
		Ref:      uuid.New(),
		Customer: customer,
		Text:     text,
		Encoded:  EncodeURIComponent(text),
	}

	step(StateHandoffRequested)
	if err := o.channel.Deliver(ctx, res.Message); err != nil {
		o.logger.Warn("order hand-off failed",
			zap.String("order_ref", res.Message.Ref.String()),
			zap.Error(err),
		)
	}

	if err := o.cart.Clear(ctx); err != nil {
		o.logger.Warn("failed to clear saved cart", zap.Error(err))
	}
	step(StateCleared)

	o.logger.Info("checkout complete",
		zap.String("order_ref", res.Message.Ref.String()),
		zap.Int("lines", len(items)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}
