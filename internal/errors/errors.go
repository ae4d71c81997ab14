package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPasswordTooShort is returned when a registration password is under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when no account matches the login email.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned when the stored password does not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrProductNotFound is returned when a product id is not in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidPhone is returned when the checkout phone fails format validation.
	ErrInvalidPhone = errors.New("invalid phone number, expected +505 XXXX-XXXX")
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionInFlight is returned when a checkout is already being submitted.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrSubmissionFailed is returned when the relay rejects or the call fails.
	ErrSubmissionFailed = errors.New("order submission failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrPasswordTooShort:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_TOO_SHORT")
	case ErrPasswordMismatch:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrWrongPassword:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "WRONG_PASSWORD")
	case ErrProductNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case ErrInvalidPhone:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PHONE")
	case ErrEmptyCart:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_CART")
	case ErrSubmissionInFlight:
		return NewHTTPError(http.StatusConflict, err.Error(), "SUBMISSION_IN_FLIGHT")
	case ErrSubmissionFailed:
		return NewHTTPError(http.StatusBadGateway, err.Error(), "SUBMISSION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
