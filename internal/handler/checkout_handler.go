package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pulseralux/internal/errors"
	"pulseralux/internal/model"
	"pulseralux/internal/service"
)

// CheckoutHandler serves the checkout endpoints.
type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CheckoutRequest carries the contact phone for the order.
type CheckoutRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// CheckoutResponse reports the submission outcome.
type CheckoutResponse struct {
	Status model.SubmissionStatus `json:"status"`
	Order  *model.Order           `json:"order,omitempty"`
}

// Submit godoc
// @Summary Submit the current cart to the order relay
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest true "Contact phone (+505 XXXX-XXXX)"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.checkoutService.Submit(c.Request().Context(), profile, req.Phone)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CheckoutResponse{
		Status: model.SubmissionStatusSucceeded,
		Order:  order,
	})
}

// Status godoc
// @Summary Get the current submission state
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CheckoutResponse
// @Router /checkout/status [get]
func (h *CheckoutHandler) Status(c echo.Context) error {
	profile, ok := currentProfile(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return c.JSON(http.StatusOK, CheckoutResponse{Status: h.checkoutService.Status(profile.ID)})
}
