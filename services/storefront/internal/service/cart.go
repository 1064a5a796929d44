package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/sakhi_shop/pkg/events"
	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
)

const DefaultTopic = "cart_events"

type CartService struct {
	Catalog *catalog.Catalog
	Events  events.Publisher
	Topic   string
}

func (s *CartService) store(ctx context.Context, storage cart.Storage, sessionID string) *cart.Store {
	l := logging.FromContext(ctx).With("svc", "cart", "session_id", sessionID)
	return cart.NewStore(storage, l)
}

func (s *CartService) Get(ctx context.Context, storage cart.Storage, sessionID string) cart.Cart {
	return s.store(ctx, storage, sessionID).Load(ctx)
}

func (s *CartService) Add(ctx context.Context, storage cart.Storage, sessionID string, productID int) (cart.Cart, error) {
	before := s.Get(ctx, storage, sessionID).TotalCount()
	c, err := s.store(ctx, storage, sessionID).AddItem(ctx, productID, s.Catalog)
	if err != nil {
		return c, err
	}
	if c.TotalCount() != before {
		line, _ := c.Line(productID)
		s.publish(ctx, sessionID, map[string]any{
			"type":      "cart_item_added",
			"productID": productID,
			"quantity":  line.Quantity,
			"count":     c.TotalCount(),
		})
	}
	return c, nil
}

func (s *CartService) Remove(ctx context.Context, storage cart.Storage, sessionID string, productID int) (cart.Cart, error) {
	before := s.Get(ctx, storage, sessionID)
	c, err := s.store(ctx, storage, sessionID).RemoveItem(ctx, productID)
	if err != nil {
		return c, err
	}
	if _, had := before.Line(productID); had {
		s.publish(ctx, sessionID, map[string]any{
			"type":      "cart_item_removed",
			"productID": productID,
			"count":     c.TotalCount(),
		})
	}
	return c, nil
}

func (s *CartService) ChangeQuantity(ctx context.Context, storage cart.Storage, sessionID string, productID, delta int) (cart.Cart, error) {
	before := s.Get(ctx, storage, sessionID)
	c, err := s.store(ctx, storage, sessionID).ChangeQuantity(ctx, productID, delta)
	if err != nil {
		return c, err
	}
	prev, had := before.Line(productID)
	line, still := c.Line(productID)
	if !had || (still && line.Quantity == prev.Quantity) {
		return c, nil
	}

	event := map[string]any{
		"type":      "cart_quantity_changed",
		"productID": productID,
		"delta":     delta,
		"quantity":  line.Quantity,
		"count":     c.TotalCount(),
	}
	if !still {
		event["type"] = "cart_item_removed"
		delete(event, "quantity")
	}
	s.publish(ctx, sessionID, event)
	return c, nil
}

func (s *CartService) Clear(ctx context.Context, storage cart.Storage, sessionID string) error {
	if err := s.store(ctx, storage, sessionID).Clear(ctx); err != nil {
		return err
	}
	s.publish(ctx, sessionID, map[string]any{"type": "cart_cleared"})
	return nil
}

func (s *CartService) publish(ctx context.Context, sessionID string, event map[string]any) {
	if s.Events == nil {
		return
	}
	topic := s.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	event["sessionID"] = sessionID

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, topic, sessionID, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "type", event["type"], "error", err)
	}
}
