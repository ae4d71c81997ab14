package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pulseralux/internal/kv"
)

func TestFavoritesToggleInvolution(t *testing.T) {
	svc := NewFavoritesService(kv.NewMemory())
	ctx := context.Background()

	before, err := svc.List(ctx, 7)
	assert.NoError(t, err)

	_, err = svc.Toggle(ctx, 7, 3)
	assert.NoError(t, err)
	after, err := svc.Toggle(ctx, 7, 3)
	assert.NoError(t, err)

	assert.ElementsMatch(t, before, after)
}

func TestFavoritesToggleNoDuplicates(t *testing.T) {
	svc := NewFavoritesService(kv.NewMemory())
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 7, 1)
	assert.NoError(t, err)
	_, err = svc.Toggle(ctx, 7, 2)
	assert.NoError(t, err)
	_, err = svc.Toggle(ctx, 7, 1)
	assert.NoError(t, err)
	ids, err := svc.Toggle(ctx, 7, 1)
	assert.NoError(t, err)

	seen := map[int]int{}
	for _, id := range ids {
		seen[id]++
		assert.Equal(t, 1, seen[id], "duplicate id %d", id)
	}
	assert.ElementsMatch(t, []int{1, 2}, ids)
}

func TestFavoritesPersistAcrossLoads(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	svc := NewFavoritesService(store)
	_, err := svc.Toggle(ctx, 7, 4)
	assert.NoError(t, err)

	reloaded := NewFavoritesService(store)
	ids, err := reloaded.List(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, []int{4}, ids)
}
