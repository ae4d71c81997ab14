package service

import (
	"context"
	"encoding/json"
	"fmt"

	"pulseralux/internal/catalog"
	apperrors "pulseralux/internal/errors"
	"pulseralux/internal/kv"
	"pulseralux/internal/metrics"
	"pulseralux/internal/model"
)

// CartService owns the per-user cart: load snapshot, apply one mutation,
// persist the snapshot before returning. Persistence is the direct
// continuation of the state change, so a later read never observes a
// stale cart.
type CartService interface {
	Get(ctx context.Context, userID uint) (*model.Cart, error)
	Add(ctx context.Context, userID uint, productID int) (*model.Cart, error)
	UpdateQuantity(ctx context.Context, userID uint, productID, quantity int) (*model.Cart, error)
	Remove(ctx context.Context, userID uint, productID int) (*model.Cart, error)
	Clear(ctx context.Context, userID uint) error
}

type cartService struct {
	catalog *catalog.Catalog
	store   kv.Store
	metrics *metrics.Collector
}

// NewCartService builds a CartService over the catalog and snapshot store.
func NewCartService(cat *catalog.Catalog, store kv.Store, collector *metrics.Collector) CartService {
	return &cartService{catalog: cat, store: store, metrics: collector}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (s *cartService) Get(ctx context.Context, userID uint) (*model.Cart, error) {
	return s.load(ctx, userID)
}

func (s *cartService) Add(ctx context.Context, userID uint, productID int) (*model.Cart, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Add(product)
	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}

	s.metrics.RecordCartMutation("add")
	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uint, productID, quantity int) (*model.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(productID, quantity)
	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}

	s.metrics.RecordCartMutation("update")
	return cart, nil
}

func (s *cartService) Remove(ctx context.Context, userID uint, productID int) (*model.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}

	s.metrics.RecordCartMutation("remove")
	return cart, nil
}

func (s *cartService) Clear(ctx context.Context, userID uint) error {
	if err := s.store.Delete(ctx, cartKey(userID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.metrics.RecordCartMutation("clear")
	return nil
}

func (s *cartService) load(ctx context.Context, userID uint) (*model.Cart, error) {
	data, err := s.store.Get(ctx, cartKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	cart := &model.Cart{}
	if data == nil {
		return cart, nil
	}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return cart, nil
}

func (s *cartService) persist(ctx context.Context, userID uint, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.store.Set(ctx, cartKey(userID), payload); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
