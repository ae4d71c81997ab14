package handler

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"pulseralux/internal/model"
)

// currentProfile extracts the cached profile from the verified session
// token the JWT middleware put on the context.
func currentProfile(c echo.Context) (model.Profile, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return model.Profile{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Profile{}, false
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		return model.Profile{}, false
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return model.Profile{ID: uint(id), Name: name, Email: email}, true
}

// bearerToken returns the raw token from the Authorization header.
func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(h, "Bearer ")
}
