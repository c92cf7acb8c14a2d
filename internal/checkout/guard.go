package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
	"github.com/Akyl0n/202507Shopping-website/internal/store"
)

// Guard is the single-slot record of the last order this client created
// and has not yet seen resolved. It is advisory and purely local: it blocks
// new submissions before any remote call, and it never clears itself from
// polled remote status. Concurrent tabs sharing the store can race; the
// idempotency key on order-create is the remote safety net for that.
type Guard struct {
	store store.Store
}

func NewGuard(st store.Store) *Guard {
	return &Guard{store: st}
}

// Current returns the persisted pending order, or nil when the slot is empty.
func (g *Guard) Current(ctx context.Context) (*domain.PendingOrder, error) {
	data, err := g.store.Get(ctx, store.PendingOrderKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pending order: %w", err)
	}
	var order domain.PendingOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode pending order: %w", err)
	}
	return &order, nil
}

// Pending reports whether an unresolved order occupies the slot. A store
// read failure counts as not pending: the guard is client-side debouncing,
// not a source of truth.
func (g *Guard) Pending(ctx context.Context) bool {
	order, err := g.Current(ctx)
	if err != nil {
		log.Printf("pending order check failed, treating slot as empty: %v", err)
		return false
	}
	return order != nil && order.Status == domain.OrderStatusPending
}

// Arm records a freshly created order as the pending one.
func (g *Guard) Arm(ctx context.Context, orderID int64) error {
	data, err := json.Marshal(domain.PendingOrder{ID: orderID, Status: domain.OrderStatusPending})
	if err != nil {
		return fmt.Errorf("encode pending order: %w", err)
	}
	if err := g.store.Set(ctx, store.PendingOrderKey, data); err != nil {
		return fmt.Errorf("persist pending order: %w", err)
	}
	return nil
}

// Clear empties the slot. Only explicit acknowledgment reaches here: a
// completed submission flow, a confirmed payment, or a user cancellation.
func (g *Guard) Clear(ctx context.Context) error {
	if err := g.store.Delete(ctx, store.PendingOrderKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear pending order: %w", err)
	}
	return nil
}
