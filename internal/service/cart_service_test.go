package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pulseralux/internal/catalog"
	apperrors "pulseralux/internal/errors"
	"pulseralux/internal/kv"
	"pulseralux/internal/model"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Product{
		{ID: 1, Name: "Pulsera de cuarzo", Price: decimal.NewFromFloat(12.99), Category: "cuarzo"},
		{ID: 2, Name: "Pulsera de chakras", Price: decimal.NewFromInt(40), Category: "energia"},
		{ID: 3, Name: "Pulsera minimalista", Price: decimal.NewFromInt(35), Category: "minimalista"},
	})
	assert.NoError(t, err)
	return cat
}

func TestCartServiceAddTwice(t *testing.T) {
	svc := NewCartService(testCatalog(t), kv.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1)
	assert.NoError(t, err)
	cart, err := svc.Add(ctx, 7, 1)
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "25.98", cart.TotalPrice().StringFixed(2))
}

func TestCartServiceAddUnknownProduct(t *testing.T) {
	svc := NewCartService(testCatalog(t), kv.NewMemory(), nil)

	_, err := svc.Add(context.Background(), 7, 99)
	assert.Equal(t, apperrors.ErrProductNotFound, err)
}

func TestCartServiceUpdateToZeroRemoves(t *testing.T) {
	svc := NewCartService(testCatalog(t), kv.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1)
	assert.NoError(t, err)
	_, err = svc.Add(ctx, 7, 2)
	assert.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, 7, 1, 0)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ID)
}

func TestCartServicePersistsAcrossLoads(t *testing.T) {
	store := kv.NewMemory()
	cat := testCatalog(t)
	ctx := context.Background()

	svc := NewCartService(cat, store, nil)
	_, err := svc.Add(ctx, 7, 2)
	assert.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, 7, 2, 3)
	assert.NoError(t, err)

	// A fresh service over the same store sees the persisted snapshot.
	reloaded := NewCartService(cat, store, nil)
	cart, err := reloaded.Get(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, "120.00", cart.TotalPrice().StringFixed(2))
}

func TestCartServiceIsolatesUsers(t *testing.T) {
	svc := NewCartService(testCatalog(t), kv.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1)
	assert.NoError(t, err)

	other, err := svc.Get(ctx, 8)
	assert.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestCartServiceRemoveAbsentIsNoop(t *testing.T) {
	svc := NewCartService(testCatalog(t), kv.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1)
	assert.NoError(t, err)

	cart, err := svc.Remove(ctx, 7, 42)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartServiceClear(t *testing.T) {
	svc := NewCartService(testCatalog(t), kv.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1)
	assert.NoError(t, err)
	assert.NoError(t, svc.Clear(ctx, 7))

	cart, err := svc.Get(ctx, 7)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems())
}
