package service

import (
	"context"
	"encoding/json"
	"fmt"

	"pulseralux/internal/kv"
)

// FavoritesService owns the per-user favorites set. Toggle is an
// involution: applying it twice returns the set to its original state.
type FavoritesService interface {
	List(ctx context.Context, userID uint) ([]int, error)
	Toggle(ctx context.Context, userID uint, productID int) ([]int, error)
}

type favoritesService struct {
	store kv.Store
}

// NewFavoritesService builds a FavoritesService over the snapshot store.
func NewFavoritesService(store kv.Store) FavoritesService {
	return &favoritesService{store: store}
}

func favoritesKey(userID uint) string {
	return fmt.Sprintf("favorites:%d", userID)
}

func (s *favoritesService) List(ctx context.Context, userID uint) ([]int, error) {
	return s.load(ctx, userID)
}

// Toggle adds productID if absent and removes it if present, then persists
// the full set.
func (s *favoritesService) Toggle(ctx context.Context, userID uint, productID int) ([]int, error) {
	ids, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	next := ids[:0]
	for _, id := range ids {
		if id == productID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, productID)
	}

	if err := s.persist(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *favoritesService) load(ctx context.Context, userID uint) ([]int, error) {
	data, err := s.store.Get(ctx, favoritesKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if data == nil {
		return []int{}, nil
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode favorites snapshot: %w", err)
	}
	return ids, nil
}

func (s *favoritesService) persist(ctx context.Context, userID uint, ids []int) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode favorites snapshot: %w", err)
	}
	if err := s.store.Set(ctx, favoritesKey(userID), payload); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
