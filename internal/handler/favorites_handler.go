package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pulseralux/internal/errors"
	"pulseralux/internal/service"
)

// FavoritesHandler serves the favorites endpoints.
type FavoritesHandler struct {
	favoritesService service.FavoritesService
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(favoritesService service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// FavoritesResponse is the current favorite product id set.
type FavoritesResponse struct {
	ProductIDs []int `json:"product_ids"`
}

// List godoc
// @Summary List favorited product ids
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FavoritesResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /favorites [get]
func (h *FavoritesHandler) List(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	ids, err := h.favoritesService.List(c.Request().Context(), profile.ID)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, FavoritesResponse{ProductIDs: ids})
}

// Toggle godoc
// @Summary Toggle a product's membership in the favorites set
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} FavoritesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /favorites/{id}/toggle [post]
func (h *FavoritesHandler) Toggle(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ids, err := h.favoritesService.Toggle(c.Request().Context(), profile.ID, productID)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, FavoritesResponse{ProductIDs: ids})
}
