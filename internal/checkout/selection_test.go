package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
	"github.com/Akyl0n/202507Shopping-website/internal/store"
)

func line(id int64, price float64, qty int) domain.CartLine {
	return domain.CartLine{ID: id, Price: decimal.NewFromFloat(price), Qty: qty}
}

func TestResolveDropsStaleIDs(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection(store.NewMemoryStore())
	require.NoError(t, sel.Capture(ctx, []int64{1, 2, 3}))

	// Line 2 was removed between capture and checkout.
	lines := []domain.CartLine{line(1, 10, 1), line(3, 5, 2)}
	resolved := sel.Resolve(ctx, lines)

	require.Len(t, resolved, 2)
	assert.Equal(t, int64(1), resolved[0].ID)
	assert.Equal(t, int64(3), resolved[1].ID)
}

func TestResolveNeverInventsLines(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection(store.NewMemoryStore())
	require.NoError(t, sel.Capture(ctx, []int64{7, 8}))

	resolved := sel.Resolve(ctx, []domain.CartLine{line(1, 10, 1)})
	assert.Empty(t, resolved, "empty resolved set is a valid state")
}

func TestSelectionSurvivesReload(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	first := NewSelection(st)
	require.NoError(t, first.Capture(ctx, []int64{1, 3}))

	// A fresh Selection over the same store is the page-reload analog.
	second := NewSelection(st)
	resolved := second.Resolve(ctx, []domain.CartLine{line(1, 10, 1), line(2, 20, 1), line(3, 30, 1)})

	require.Len(t, resolved, 2)
	assert.Equal(t, int64(1), resolved[0].ID)
	assert.Equal(t, int64(3), resolved[1].ID)
}

func TestClearWipesBothCopies(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	sel := NewSelection(st)
	require.NoError(t, sel.Capture(ctx, []int64{1}))
	sel.Clear(ctx)

	assert.Empty(t, sel.IDs(ctx))
	assert.Empty(t, NewSelection(st).IDs(ctx), "durable copy must be gone too")
}

func TestCorruptFallbackReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, store.SelectedIDsKey, []byte("not json")))

	sel := NewSelection(st)
	assert.Empty(t, sel.IDs(ctx))
}

func TestTotalIsOrderIndependent(t *testing.T) {
	a := line(1, 10, 2)
	b := line(2, 5, 3)

	forward := Total([]domain.CartLine{a, b})
	backward := Total([]domain.CartLine{b, a})

	assert.True(t, forward.Equal(backward))
	assert.Equal(t, "35.00", DisplayTotal(forward))
}

func TestTotalUnroundedUntilDisplay(t *testing.T) {
	// Three lines of 0.10 × 3: binary floats would drift, decimals don't.
	lines := []domain.CartLine{line(1, 0.10, 3), line(2, 0.10, 3), line(3, 0.10, 3)}

	total := Total(lines)
	assert.True(t, total.Equal(decimal.NewFromFloat(0.9)))
	assert.Equal(t, "0.90", DisplayTotal(total))
}

func TestTotalEmpty(t *testing.T) {
	assert.Equal(t, "0.00", DisplayTotal(Total(nil)))
}
