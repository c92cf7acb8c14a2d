package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

// API is the slice of the remote client the cache depends on.
type API interface {
	GetCart(ctx context.Context) ([]domain.CartLine, error)
	AddCartLine(ctx context.Context, productID, modelID int64, qty int) error
	UpdateCartQty(ctx context.Context, id int64, qty int) error
	RemoveCartLine(ctx context.Context, id int64) error
}

var (
	ErrQtyTooLow    = errors.New("quantity must be at least 1")
	ErrLineNotFound = errors.New("cart line not found")
)

// Cache mirrors the remote cart. Mutations are not optimistic: the mirror
// only changes after the remote confirms and one full reload completes.
type Cache struct {
	api API

	sfg singleflight.Group // collapses concurrent reloads

	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewCache(api API) *Cache {
	return &Cache{api: api}
}

// Load refreshes the mirror from the remote and returns the fresh lines.
// It fails open: a transport or decode failure leaves an empty cart and is
// only logged, never propagated.
func (c *Cache) Load(ctx context.Context) []domain.CartLine {
	v, _, _ := c.sfg.Do("cart", func() (interface{}, error) {
		lines, err := c.api.GetCart(ctx)
		if err != nil {
			log.Printf("cart load failed, presenting empty cart: %v", err)
			lines = nil
		}
		c.mu.Lock()
		c.lines = lines
		c.mu.Unlock()
		return lines, nil
	})
	lines, _ := v.([]domain.CartLine)
	return copyLines(lines)
}

// Lines returns the mirror as of the last load.
func (c *Cache) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyLines(c.lines)
}

func (c *Cache) Line(id int64) (domain.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, line := range c.lines {
		if line.ID == id {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// Add posts a new line (or increments a matching one remotely) and reloads.
func (c *Cache) Add(ctx context.Context, productID, modelID int64, qty int) error {
	if qty < 1 {
		return ErrQtyTooLow
	}
	if err := c.api.AddCartLine(ctx, productID, modelID, qty); err != nil {
		return err
	}
	c.Load(ctx)
	return nil
}

// SetQty updates a line's quantity and reloads. Quantities below 1 are
// rejected locally; the last unit only leaves the cart through Remove.
func (c *Cache) SetQty(ctx context.Context, id int64, qty int) error {
	if qty < 1 {
		return ErrQtyTooLow
	}
	if err := c.api.UpdateCartQty(ctx, id, qty); err != nil {
		return err
	}
	c.Load(ctx)
	return nil
}

func (c *Cache) Remove(ctx context.Context, id int64) error {
	if err := c.api.RemoveCartLine(ctx, id); err != nil {
		return err
	}
	c.Load(ctx)
	return nil
}

// IncreaseQty bumps a line by one unit.
func (c *Cache) IncreaseQty(ctx context.Context, id int64) error {
	line, ok := c.Line(id)
	if !ok {
		return ErrLineNotFound
	}
	return c.SetQty(ctx, id, line.Qty+1)
}

// DecreaseQty lowers a line by one unit. At quantity 1 it is a local no-op,
// with no remote call.
func (c *Cache) DecreaseQty(ctx context.Context, id int64) error {
	line, ok := c.Line(id)
	if !ok {
		return ErrLineNotFound
	}
	if line.Qty <= 1 {
		return nil
	}
	return c.SetQty(ctx, id, line.Qty-1)
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	if lines == nil {
		return nil
	}
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
