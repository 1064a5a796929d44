package cart

import (
	"context"
	"fmt"
	"log/slog"
)

// Store is the write-through cart of one visitor. Every mutation loads the
// persisted cart, changes it and saves it back; there is no cached copy.
type Store struct {
	storage Storage
	log     *slog.Logger
}

func NewStore(storage Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{storage: storage, log: log}
}

// Load returns the persisted cart. Missing, unreadable or corrupt state yields an
// empty cart; the failure is logged and never returned.
func (s *Store) Load(ctx context.Context) Cart {
	data, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn("cart_load_failed", "reason", "storage read", "error", err)
		return Cart{}
	}
	c, err := Decode(data)
	if err != nil {
		s.log.Warn("cart_load_failed", "reason", "corrupt state", "error", err)
		return Cart{}
	}
	return c
}

func (s *Store) save(ctx context.Context, c Cart) error {
	data, err := Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Save(ctx, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// AddItem adds one unit of productID. Ids unknown to products are ignored.
func (s *Store) AddItem(ctx context.Context, productID int, products Catalog) (Cart, error) {
	c := s.Load(ctx)

	p, ok := products.Lookup(productID)
	if !ok {
		s.log.Debug("cart_add_ignored", "product_id", productID, "reason", "unknown product")
		return c, nil
	}

	c = c.clone()
	if i := c.index(p.ID); i >= 0 {
		if c.Lines[i].Quantity >= MaxQuantity {
			s.log.Debug("cart_add_ignored", "product_id", productID, "reason", "quantity limit")
			return c, nil
		}
		c.Lines[i].Quantity++
	} else {
		c.Lines = append(c.Lines, newLine(p))
	}

	return c, s.save(ctx, c)
}

// RemoveItem drops the line of productID, if any.
func (s *Store) RemoveItem(ctx context.Context, productID int) (Cart, error) {
	c := s.Load(ctx)
	if c.index(productID) < 0 {
		return c, nil
	}

	c = c.without(productID)
	return c, s.save(ctx, c)
}

// ChangeQuantity adds delta to the quantity of productID. A result of zero or
// less removes the line; a result above MaxQuantity is clamped to it.
func (s *Store) ChangeQuantity(ctx context.Context, productID, delta int) (Cart, error) {
	c := s.Load(ctx)
	i := c.index(productID)
	if i < 0 || delta == 0 {
		return c, nil
	}

	q := c.Lines[i].Quantity
	switch {
	case delta <= -q:
		c = c.without(productID)
	case delta >= MaxQuantity-q:
		if q == MaxQuantity {
			return c, nil
		}
		c = c.clone()
		c.Lines[i].Quantity = MaxQuantity
	default:
		c = c.clone()
		c.Lines[i].Quantity = q + delta
	}
	return c, s.save(ctx, c)
}

// Clear persists an empty cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.save(ctx, Cart{})
}

func (s *Store) TotalCount(ctx context.Context) int {
	return s.Load(ctx).TotalCount()
}

func (s *Store) TotalPrice(ctx context.Context) int {
	return s.Load(ctx).TotalPrice()
}
