package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spiceshop/internal/models"
	"spiceshop/internal/pricing"
)

type mockCatalog struct {
	prices map[string]pricing.ResolvedPrice // key productID.Hex()::size
}

func (m *mockCatalog) Resolve(_ context.Context, productID primitive.ObjectID, size string) (pricing.ResolvedPrice, error) {
	if p, ok := m.prices[productID.Hex()+"::"+size]; ok {
		return p, nil
	}
	return pricing.ResolvedPrice{}, pricing.ProductNotFoundError{ProductID: productID}
}

type mockOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (m *mockOrderStore) Insert(_ context.Context, order models.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, order)
	return order.ID, nil
}

type mockNotifier struct {
	created []models.Order
}

func (m *mockNotifier) OrderCreated(order models.Order) {
	m.created = append(m.created, order)
}

func newAssembler(catalog *mockCatalog, store *mockOrderStore, notifier *mockNotifier) *Assembler {
	a := &Assembler{
		Catalog:     catalog,
		Orders:      store,
		Promo:       pricing.PromoValidator{Code: "FREEDELIVERY"},
		DeliveryFee: 100,
	}
	// a typed-nil *mockNotifier stored in the interface field would not
	// compare equal to nil inside Create
	if notifier != nil {
		a.Notifier = notifier
	}
	return a
}

func intentWith(items ...IntentItem) OrderIntent {
	return OrderIntent{
		CustomerName:  "Asha",
		Phone:         "9876543210",
		Email:         "asha@example.com",
		Address:       "12 Spice Lane, Mysore",
		Pincode:       "560001",
		Items:         items,
		PaymentMethod: "cod",
	}
}

func TestCreateUsesServerResolvedPrices(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
	}}
	store := &mockOrderStore{}
	notifier := &mockNotifier{}
	a := newAssembler(catalog, store, notifier)

	order, err := a.Create(context.Background(), intentWith(IntentItem{
		ProductID: p1.Hex(), Size: "10g", Quantity: 2,
	}))
	require.NoError(t, err)

	// 2 x 140 + flat fee 100
	assert.Equal(t, 280.0+100.0, order.TotalPrice)
	assert.Equal(t, 100.0, order.DeliveryFee)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Saffron", order.Items[0].Name)
	assert.Equal(t, 140.0, order.Items[0].UnitPrice)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.ID.IsZero())
	require.Len(t, notifier.created, 1)
}

func TestCreateBulkWaiverZeroesFee(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::50g": {Name: "Saffron", UnitPrice: 700},
	}}
	store := &mockOrderStore{}
	a := newAssembler(catalog, store, nil)

	intent := intentWith(IntentItem{ProductID: p1.Hex(), Size: "50g", Quantity: 1})
	intent.FreeDeliveryRequested = true

	order, err := a.Create(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, 700.0, order.TotalPrice)
}

func TestCreateRevalidatesCouponServerSide(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
	}}

	// valid code waives the fee regardless of any client flag
	store := &mockOrderStore{}
	a := newAssembler(catalog, store, nil)
	intent := intentWith(IntentItem{ProductID: p1.Hex(), Size: "10g", Quantity: 1})
	intent.CouponCode = "freedelivery"

	order, err := a.Create(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.DeliveryFee)

	// wrong code charges the fee even if the client claimed it applied
	intent.CouponCode = "NOTACODE"
	order, err = a.Create(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.DeliveryFee)
}

func TestCreateUnknownProductPersistsNothing(t *testing.T) {
	known := primitive.NewObjectID()
	unknown := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		known.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
	}}
	store := &mockOrderStore{}
	notifier := &mockNotifier{}
	a := newAssembler(catalog, store, notifier)

	_, err := a.Create(context.Background(), intentWith(
		IntentItem{ProductID: known.Hex(), Size: "10g", Quantity: 1},
		IntentItem{ProductID: unknown.Hex(), Size: "25g", Quantity: 1},
	))

	var notFound pricing.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, unknown, notFound.ProductID)
	assert.Empty(t, store.orders, "no partial order may be persisted")
	assert.Empty(t, notifier.created)
}

func TestCreateRejectsEmptyIntent(t *testing.T) {
	a := newAssembler(&mockCatalog{}, &mockOrderStore{}, nil)

	_, err := a.Create(context.Background(), intentWith())
	var invalid InvalidOrderError
	require.ErrorAs(t, err, &invalid)
}

func TestCreateRejectsBadQuantityAndProductID(t *testing.T) {
	a := newAssembler(&mockCatalog{}, &mockOrderStore{}, nil)

	_, err := a.Create(context.Background(), intentWith(IntentItem{
		ProductID: "not-a-hex-id", Size: "10g", Quantity: 1,
	}))
	var invalid InvalidOrderError
	require.ErrorAs(t, err, &invalid)

	p1 := primitive.NewObjectID()
	_, err = a.Create(context.Background(), intentWith(IntentItem{
		ProductID: p1.Hex(), Size: "10g", Quantity: 0,
	}))
	require.ErrorAs(t, err, &invalid)
}

func TestCreateResolvesEachLineIndependently(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
		p1.Hex() + "::50g": {Name: "Saffron", UnitPrice: 700},
	}}
	store := &mockOrderStore{}
	a := newAssembler(catalog, store, nil)

	order, err := a.Create(context.Background(), intentWith(
		IntentItem{ProductID: p1.Hex(), Size: "10g", Quantity: 1},
		IntentItem{ProductID: p1.Hex(), Size: "50g", Quantity: 1},
	))
	require.NoError(t, err)

	// the 50g line must carry the 50g price, not the 10g one
	assert.Equal(t, 140.0, order.Items[0].UnitPrice)
	assert.Equal(t, 700.0, order.Items[1].UnitPrice)
	assert.Equal(t, 140.0+700.0+100.0, order.TotalPrice)
}

func TestCreateInsertFailureReturnsError(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
	}}
	store := &mockOrderStore{err: assert.AnError}
	notifier := &mockNotifier{}
	a := newAssembler(catalog, store, notifier)

	_, err := a.Create(context.Background(), intentWith(IntentItem{
		ProductID: p1.Hex(), Size: "10g", Quantity: 1,
	}))
	require.Error(t, err)
	assert.Empty(t, notifier.created, "notification must not fire for failed persistence")
}

func TestCreateWithoutNotifierSucceeds(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
	}}
	store := &mockOrderStore{}
	a := newAssembler(catalog, store, nil)

	order, err := a.Create(context.Background(), intentWith(IntentItem{
		ProductID: p1.Hex(), Size: "10g", Quantity: 1,
	}))
	require.NoError(t, err)
	assert.False(t, order.ID.IsZero())
	require.Len(t, store.orders, 1)
}

func TestCreateLowercasesContactEmail(t *testing.T) {
	p1 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g": {Name: "Saffron", UnitPrice: 140},
	}}
	store := &mockOrderStore{}
	a := newAssembler(catalog, store, nil)

	intent := intentWith(IntentItem{ProductID: p1.Hex(), Size: "10g", Quantity: 1})
	intent.Email = "  Asha@Example.COM "

	order, err := a.Create(context.Background(), intent)
	require.NoError(t, err)

	// the guest lookup filters on the lowercased address; the persisted
	// record must match it
	assert.Equal(t, "asha@example.com", order.Email)
	require.Len(t, store.orders, 1)
	assert.Equal(t, "asha@example.com", store.orders[0].Email)
}

func TestCreateTotalInvariant(t *testing.T) {
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()
	catalog := &mockCatalog{prices: map[string]pricing.ResolvedPrice{
		p1.Hex() + "::10g":  {Name: "Saffron", UnitPrice: 140},
		p2.Hex() + "::100g": {Name: "Cardamom", UnitPrice: 1400},
	}}
	store := &mockOrderStore{}
	a := newAssembler(catalog, store, nil)

	order, err := a.Create(context.Background(), intentWith(
		IntentItem{ProductID: p1.Hex(), Size: "10g", Quantity: 3},
		IntentItem{ProductID: p2.Hex(), Size: "100g", Quantity: 1},
	))
	require.NoError(t, err)

	var subtotal float64
	for _, item := range order.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	assert.Equal(t, subtotal+order.DeliveryFee, order.TotalPrice)
	assert.Contains(t, []float64{0, 100}, order.DeliveryFee)
}
