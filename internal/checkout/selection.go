package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
	"github.com/Akyl0n/202507Shopping-website/internal/store"
)

// Selection carries the cart-line ids chosen for a checkout attempt from
// the cart view to checkout. A durable copy survives reloads, so checkout
// resolves the same set even when the in-memory one is gone.
type Selection struct {
	store store.Store

	mu  sync.Mutex
	ids []int64
}

func NewSelection(st store.Store) *Selection {
	return &Selection{store: st}
}

// Capture records the chosen ids in memory and in the durable fallback.
func (s *Selection) Capture(ctx context.Context, ids []int64) error {
	s.mu.Lock()
	s.ids = append([]int64(nil), ids...)
	s.mu.Unlock()

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := s.store.Set(ctx, store.SelectedIDsKey, data); err != nil {
		return fmt.Errorf("persist selection: %w", err)
	}
	return nil
}

// IDs returns the captured set, falling back to the durable copy when the
// in-memory one is empty. A missing or corrupt fallback reads as empty.
func (s *Selection) IDs(ctx context.Context) []int64 {
	s.mu.Lock()
	ids := append([]int64(nil), s.ids...)
	s.mu.Unlock()
	if len(ids) > 0 {
		return ids
	}

	data, err := s.store.Get(ctx, store.SelectedIDsKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("selection fallback read failed: %v", err)
		}
		return nil
	}
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("selection fallback corrupt, ignoring: %v", err)
		return nil
	}
	return ids
}

// Resolve computes the purchasable subset: captured ids filtered against
// the lines actually present. Ids whose line was removed since capture are
// silently dropped. An empty result is a valid state, not an error.
func (s *Selection) Resolve(ctx context.Context, lines []domain.CartLine) []domain.CartLine {
	wanted := make(map[int64]bool, len(lines))
	for _, id := range s.IDs(ctx) {
		wanted[id] = true
	}
	var selected []domain.CartLine
	for _, line := range lines {
		if wanted[line.ID] {
			selected = append(selected, line)
		}
	}
	return selected
}

// Clear wipes both copies. Called on successful submission or explicit
// cancellation.
func (s *Selection) Clear(ctx context.Context) {
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
	if err := s.store.Delete(ctx, store.SelectedIDsKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("clear persisted selection: %v", err)
	}
}

// Total sums price × qty over lines on unrounded decimals, so the order in
// which lines arrive never changes the result.
func Total(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// DisplayTotal renders a total for display, rounded to two places. Rounding
// happens here and nowhere else.
func DisplayTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}
