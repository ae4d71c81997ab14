package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"pulseralux/docs"
	"pulseralux/internal/config"
	"pulseralux/internal/handler"
	"pulseralux/internal/metrics"
)

// authRateLimit caps login/register attempts per client IP.
const authRateLimit = rate.Limit(5)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gatherer prometheus.Gatherer,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	favoritesHandler *handler.FavoritesHandler,
	checkoutHandler *handler.CheckoutHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	authLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(authRateLimit))
	api.POST("/auth/register", authHandler.Register, authLimiter)
	api.POST("/auth/login", authHandler.Login, authLimiter)

	// The storefront is browsable before login; the full catalog is not.
	api.GET("/products/featured", catalogHandler.Featured)
	api.GET("/products/categories", catalogHandler.Categories)

	// Secured routes (require a session token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/session", authHandler.Session)
	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/products", catalogHandler.List)

	secured.GET("/cart", cartHandler.Get)
	secured.DELETE("/cart", cartHandler.Clear)
	secured.POST("/cart/items", cartHandler.AddItem)
	secured.PUT("/cart/items/:id", cartHandler.UpdateItem)
	secured.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	secured.GET("/favorites", favoritesHandler.List)
	secured.POST("/favorites/:id/toggle", favoritesHandler.Toggle)

	secured.POST("/checkout", checkoutHandler.Submit)
	secured.GET("/checkout/status", checkoutHandler.Status)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
