package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pulseralux/internal/errors"
	"pulseralux/internal/model"
	"pulseralux/internal/service"
)

// CartHandler serves the cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest adds one unit of a product to the cart.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required"`
}

// UpdateItemRequest sets an exact quantity. Zero or below removes the item.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart with its derived totals.
type CartResponse struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice string           `json:"total_price"`
}

func cartResponse(cart *model.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartResponse{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice().StringFixed(2),
	}
}

// Get godoc
// @Summary Get the current cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	cart, err := h.cartService.Get(c.Request().Context(), profile.ID)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// AddItem godoc
// @Summary Add a product to the cart, incrementing its quantity if present
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddItemRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cartService.Add(c.Request().Context(), profile.ID, req.ProductID)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// UpdateItem godoc
// @Summary Set the quantity of a cart item
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Param request body UpdateItemRequest true "New quantity"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.UpdateQuantity(c.Request().Context(), profile.ID, productID, req.Quantity)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// RemoveItem godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	cart, err := h.cartService.Remove(c.Request().Context(), profile.ID, productID)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cartResponse(cart))
}

// Clear godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if err := h.cartService.Clear(c.Request().Context(), profile.ID); err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cartResponse(&model.Cart{}))
}
