package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/Akyl0n/202507Shopping-website/internal/api"
	"github.com/Akyl0n/202507Shopping-website/internal/cart"
	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

// OrderAPI is the slice of the remote client the controller drives.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (int64, error)
	PayOrder(ctx context.Context, orderID int64) error
	OrderDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	Address(ctx context.Context) (string, error)
}

// Controller drives an order from creation through payment, keeping the
// cart mirror, the captured selection and the pending-order slot consistent
// with the remote. Nothing here retries: every failure waits for the user.
type Controller struct {
	api       OrderAPI
	cart      *cart.Cache
	selection *Selection
	guard     *Guard
}

func NewController(orderAPI OrderAPI, cache *cart.Cache, selection *Selection, guard *Guard) *Controller {
	return &Controller{
		api:       orderAPI,
		cart:      cache,
		selection: selection,
		guard:     guard,
	}
}

// Submit creates an order from the captured selection and returns the new
// order id. The pending-order check runs first, against local state only,
// so a blocked submission costs no round-trip. On failure the cart, the
// selection and the slot are left exactly as they were.
func (c *Controller) Submit(ctx context.Context) (int64, error) {
	if c.guard.Pending(ctx) {
		return 0, ErrOrderPending
	}

	selected := c.selection.Resolve(ctx, c.cart.Load(ctx))
	if len(selected) == 0 {
		return 0, ErrEmptySelection
	}

	// Fetched fresh on every submission; a missing address is not fatal.
	address, err := c.api.Address(ctx)
	if err != nil {
		log.Printf("address lookup failed, submitting without one: %v", err)
		address = ""
	}

	items := make([]domain.OrderItem, 0, len(selected))
	for _, line := range selected {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			ModelID:   line.ModelID,
			Quantity:  line.Qty,
			Price:     line.Price,
		})
	}

	orderID, err := c.api.CreateOrder(ctx, api.CreateOrderRequest{
		Items:   items,
		Address: address,
		Total:   Total(selected),
	})
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	// Success: drop any stale slot reference, take the sold lines out of
	// the cart, forget the selection, record the new order as pending.
	if err := c.guard.Clear(ctx); err != nil {
		log.Printf("clear stale pending order: %v", err)
	}
	for _, line := range selected {
		if err := c.cart.Remove(ctx, line.ID); err != nil {
			log.Printf("remove ordered line %d from cart: %v", line.ID, err)
		}
	}
	c.selection.Clear(ctx)
	if err := c.guard.Arm(ctx, orderID); err != nil {
		log.Printf("record pending order %d: %v", orderID, err)
	}

	return orderID, nil
}

// Pay confirms payment for the order. Success clears the matching slot and
// returns a fresh detail reflecting the paid status; failure leaves the
// order pending for another attempt.
func (c *Controller) Pay(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	if err := c.api.PayOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("pay order %d: %w", orderID, err)
	}

	current, err := c.guard.Current(ctx)
	if err != nil {
		log.Printf("pending order lookup after payment: %v", err)
	}
	if current != nil && current.ID == orderID {
		if err := c.guard.Clear(ctx); err != nil {
			log.Printf("clear pending order after payment: %v", err)
		}
	}

	detail, err := c.api.OrderDetail(ctx, orderID)
	if err != nil {
		// Payment itself went through; only the refreshed view is missing.
		return nil, fmt.Errorf("refresh order %d after payment: %w", orderID, err)
	}
	return detail, nil
}

// Cancel is the explicit user acknowledgment that abandons the pending
// order locally. The remote order is untouched.
func (c *Controller) Cancel(ctx context.Context) error {
	current, err := c.guard.Current(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNoPendingOrder
	}
	return c.guard.Clear(ctx)
}
