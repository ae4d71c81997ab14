package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pulseralux/internal/catalog"
	"pulseralux/internal/errors"
	"pulseralux/internal/model"
	"pulseralux/internal/service"
)

// CatalogHandler serves the product views.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ProductListResponse is the browse result plus the counters a client
// needs for its load-more control.
type ProductListResponse struct {
	Products     []model.Product `json:"products"`
	VisibleCount int             `json:"visible_count"`
	Total        int             `json:"total"`
}

// List godoc
// @Summary Browse the catalog with search, category and favorites filters
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name search term (case-insensitive substring)"
// @Param category query string false "Category id, 'todos' for all"
// @Param favorites query bool false "Only favorited products"
// @Param limit query int false "Visible count (default 6)"
// @Success 200 {object} ProductListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	state := catalog.NewFilterState()
	state.SearchTerm = c.QueryParam("q")
	if cat := c.QueryParam("category"); cat != "" {
		state.Category = cat
	}
	state.FavoritesOnly = c.QueryParam("favorites") == "true"
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 {
			state.VisibleCount = limit
		}
	}
	if state.VisibleCount > h.catalogService.Total() {
		state.VisibleCount = h.catalogService.Total()
	}

	products, err := h.catalogService.Browse(c.Request().Context(), profile.ID, state)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ProductListResponse{
		Products:     products,
		VisibleCount: state.VisibleCount,
		Total:        h.catalogService.Total(),
	})
}

// Featured godoc
// @Summary List featured products
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Router /products/featured [get]
func (h *CatalogHandler) Featured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalogService.Featured(c.Request().Context()))
}

// Categories godoc
// @Summary List product categories
// @Tags products
// @Produce json
// @Success 200 {array} catalog.Category
// @Router /products/categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalogService.Categories(c.Request().Context()))
}
