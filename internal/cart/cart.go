// Package cart keeps the shopper's pending selection, independent of login
// state, surviving page reloads. Persistence is an injected Backend so
// tests can substitute an in-memory store.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Line is one cart entry. Uniqueness key is (productID, size); the price
// is a display-only copy and is never trusted at order time.
type Line struct {
	CartID    string  `json:"cartId"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Cart is the full selection for one session.
type Cart struct {
	Items []Line `json:"items"`
}

// Total is derived, not stored; it feeds the client display only.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c.Items {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// LineKey builds the composite cart key for a product and size.
func LineKey(productID, size string) string {
	return fmt.Sprintf("%s::%s", productID, size)
}

// Store exposes cart mutations over an injected persistence backend. Every
// mutation persists immediately.
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get loads the session's cart. A missing or unparsable payload yields an
// empty cart; corruption is logged, never surfaced.
func (s *Store) Get(ctx context.Context, session string) (Cart, error) {
	data, err := s.backend.Load(ctx, session)
	if err == ErrNotFound {
		return Cart{Items: []Line{}}, nil
	}
	if err != nil {
		return Cart{}, err
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		log.Printf("[CART] discarding corrupt cart for session %s: %v", session, err)
		return Cart{Items: []Line{}}, nil
	}
	if c.Items == nil {
		c.Items = []Line{}
	}
	return c, nil
}

// AddItem increments the quantity of an existing (productID, size) line or
// appends a new line with quantity 1.
func (s *Store) AddItem(ctx context.Context, session string, line Line) (Cart, error) {
	c, err := s.Get(ctx, session)
	if err != nil {
		return Cart{}, err
	}

	key := LineKey(line.ProductID, line.Size)
	for i := range c.Items {
		if c.Items[i].CartID == key {
			c.Items[i].Quantity++
			return c, s.save(ctx, session, c)
		}
	}

	line.CartID = key
	line.Quantity = 1
	c.Items = append(c.Items, line)
	return c, s.save(ctx, session, c)
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, session, key string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, session, key)
	}

	c, err := s.Get(ctx, session)
	if err != nil {
		return Cart{}, err
	}
	for i := range c.Items {
		if c.Items[i].CartID == key {
			c.Items[i].Quantity = quantity
			break
		}
	}
	return c, s.save(ctx, session, c)
}

// RemoveItem deletes the line with the given key. Removing an absent key
// is a no-op.
func (s *Store) RemoveItem(ctx context.Context, session, key string) (Cart, error) {
	c, err := s.Get(ctx, session)
	if err != nil {
		return Cart{}, err
	}
	kept := c.Items[:0]
	for _, line := range c.Items {
		if line.CartID != key {
			kept = append(kept, line)
		}
	}
	c.Items = kept
	return c, s.save(ctx, session, c)
}

// Clear empties the session's cart; called after a successful order
// submission.
func (s *Store) Clear(ctx context.Context, session string) error {
	return s.backend.Delete(ctx, session)
}

func (s *Store) save(ctx context.Context, session string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	return s.backend.Save(ctx, session, data)
}
