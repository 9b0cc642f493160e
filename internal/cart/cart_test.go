package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = "sess-1"

func newTestStore() (*Store, *MemoryBackend) {
	backend := NewMemoryBackend()
	return NewStore(backend), backend
}

func TestAddItemTwiceMergesIntoOneLine(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "50g", Name: "Saffron", UnitPrice: 700})
	require.NoError(t, err)
	c, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "50g", Name: "Saffron", UnitPrice: 700})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "P1::50g", c.Items[0].CartID)
}

func TestAddItemDifferentSizesStayDistinct(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "10g", UnitPrice: 140})
	require.NoError(t, err)
	c, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "50g", UnitPrice: 700})
	require.NoError(t, err)

	assert.Len(t, c.Items, 2)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "10g"})
	require.NoError(t, err)
	key := LineKey("P1", "10g")

	c, err := store.UpdateQuantity(ctx, session, key, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// idempotent: repeating either operation leaves the same end state
	c, err = store.UpdateQuantity(ctx, session, key, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	c, err = store.RemoveItem(ctx, session, key)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestUpdateQuantityReplacesValue(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "25g"})
	require.NoError(t, err)

	c, err := store.UpdateQuantity(ctx, session, LineKey("P1", "25g"), 5)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestTotalIsDerivedFromDisplayPrices(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, session, Line{ProductID: "P1", Size: "10g", UnitPrice: 140})
	require.NoError(t, err)
	_, err = store.AddItem(ctx, session, Line{ProductID: "P1", Size: "10g", UnitPrice: 140})
	require.NoError(t, err)
	c, err := store.AddItem(ctx, session, Line{ProductID: "P2", Size: "50g", UnitPrice: 700})
	require.NoError(t, err)

	assert.Equal(t, 980.0, c.Total())
}

func TestClearEmptiesTheStore(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, session, Line{ProductID: "P1"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, session))

	c, err := store.Get(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCorruptPayloadFallsBackToEmptyCart(t *testing.T) {
	store, backend := newTestStore()
	ctx := context.Background()

	require.NoError(t, backend.Save(ctx, session, []byte("{not json")))

	c, err := store.Get(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
