package store

import (
	"context"
	"errors"
)

// Store is the durable fallback the browser kept in localStorage: a tiny
// same-origin key/value namespace shared by every tab. Writes carry no
// lock; concurrent writers race and the last write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")

const (
	// SelectedIDsKey holds the cart-line ids carried into checkout.
	SelectedIDsKey = "checkout_selected_ids"

	// PendingOrderKey holds the single in-flight order record.
	PendingOrderKey = "checkout_order"
)
