package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

// fakeAPI acts as the remote: mutations change its lines, GetCart reports
// them, and every call is counted so tests can assert on round-trips.
type fakeAPI struct {
	mu sync.Mutex

	lines  []domain.CartLine
	nextID int64

	getErr error

	getCalls    int
	updateCalls int
}

func (f *fakeAPI) GetCart(context.Context) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]domain.CartLine, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeAPI) AddCartLine(_ context.Context, productID, modelID int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].ProductID == productID && f.lines[i].ModelID == modelID {
			f.lines[i].Qty += qty
			return nil
		}
	}
	f.nextID++
	f.lines = append(f.lines, domain.CartLine{
		ID:        f.nextID,
		ProductID: productID,
		ModelID:   modelID,
		Price:     decimal.NewFromInt(10),
		Qty:       qty,
	})
	return nil
}

func (f *fakeAPI) UpdateCartQty(_ context.Context, id int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines[i].Qty = qty
			return nil
		}
	}
	return errors.New("line not found")
}

func (f *fakeAPI) RemoveCartLine(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return errors.New("line not found")
}

func TestMutationsMirrorRemote(t *testing.T) {
	remote := &fakeAPI{}
	cache := NewCache(remote)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 10, 20, 1))
	require.NoError(t, cache.Add(ctx, 11, 21, 3))
	require.NoError(t, cache.Add(ctx, 10, 20, 1)) // increments the match

	lines := cache.Lines()
	remoteLines, err := remote.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, remoteLines, lines, "mirror must equal the remote after mutations")
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Qty)

	require.NoError(t, cache.SetQty(ctx, lines[1].ID, 5))
	require.NoError(t, cache.Remove(ctx, lines[0].ID))

	remoteLines, err = remote.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, remoteLines, cache.Lines())
	require.Len(t, cache.Lines(), 1)
	assert.Equal(t, 5, cache.Lines()[0].Qty)
}

func TestEachMutationTriggersOneReload(t *testing.T) {
	remote := &fakeAPI{}
	cache := NewCache(remote)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, 1, 1))
	assert.Equal(t, 1, remote.getCalls)

	require.NoError(t, cache.SetQty(ctx, 1, 2))
	assert.Equal(t, 2, remote.getCalls)

	require.NoError(t, cache.Remove(ctx, 1))
	assert.Equal(t, 3, remote.getCalls)
}

func TestLoadFailsOpenToEmpty(t *testing.T) {
	remote := &fakeAPI{getErr: errors.New("connection refused")}
	cache := NewCache(remote)

	lines := cache.Load(context.Background())
	assert.Empty(t, lines)
	assert.Empty(t, cache.Lines())
}

func TestSetQtyRejectsBelowOne(t *testing.T) {
	remote := &fakeAPI{}
	cache := NewCache(remote)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, 1, 2))

	assert.ErrorIs(t, cache.SetQty(ctx, 1, 0), ErrQtyTooLow)
	assert.ErrorIs(t, cache.SetQty(ctx, 1, -1), ErrQtyTooLow)
	assert.ErrorIs(t, cache.Add(ctx, 2, 2, 0), ErrQtyTooLow)
	assert.Equal(t, 0, remote.updateCalls, "rejected quantities must not reach the remote")
}

func TestDecreaseQtyAtOneIsLocalNoOp(t *testing.T) {
	remote := &fakeAPI{}
	cache := NewCache(remote)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, 1, 1))
	line := cache.Lines()[0]
	require.Equal(t, 1, line.Qty)

	require.NoError(t, cache.DecreaseQty(ctx, line.ID))
	assert.Equal(t, 0, remote.updateCalls, "decrease at qty 1 must not call the remote")
	assert.Equal(t, 1, cache.Lines()[0].Qty)
}

func TestIncreaseAndDecreaseQty(t *testing.T) {
	remote := &fakeAPI{}
	cache := NewCache(remote)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, 1, 1))
	id := cache.Lines()[0].ID

	require.NoError(t, cache.IncreaseQty(ctx, id))
	assert.Equal(t, 2, cache.Lines()[0].Qty)

	require.NoError(t, cache.DecreaseQty(ctx, id))
	assert.Equal(t, 1, cache.Lines()[0].Qty)

	assert.ErrorIs(t, cache.IncreaseQty(ctx, 999), ErrLineNotFound)
}
