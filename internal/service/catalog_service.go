package service

import (
	"context"

	"pulseralux/internal/catalog"
	"pulseralux/internal/model"
)

// CatalogService exposes the catalog views: the filtered/paginated browse
// list, the featured strip, and the category list.
type CatalogService interface {
	Browse(ctx context.Context, userID uint, state catalog.FilterState) ([]model.Product, error)
	Featured(ctx context.Context) []model.Product
	Categories(ctx context.Context) []catalog.Category
	Total() int
}

type catalogService struct {
	catalog   *catalog.Catalog
	favorites FavoritesService
}

// NewCatalogService builds a CatalogService. Favorites are needed because
// the favorites-only filter reads the caller's set.
func NewCatalogService(cat *catalog.Catalog, favorites FavoritesService) CatalogService {
	return &catalogService{catalog: cat, favorites: favorites}
}

func (s *catalogService) Browse(ctx context.Context, userID uint, state catalog.FilterState) ([]model.Product, error) {
	var favs []int
	if state.FavoritesOnly {
		var err error
		favs, err = s.favorites.List(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return catalog.Filter(s.catalog.Products(), favs, state), nil
}

func (s *catalogService) Featured(ctx context.Context) []model.Product {
	return s.catalog.Featured()
}

func (s *catalogService) Categories(ctx context.Context) []catalog.Category {
	return catalog.Categories
}

func (s *catalogService) Total() int {
	return s.catalog.Len()
}
