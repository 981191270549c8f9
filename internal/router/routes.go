package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/identity-cache/api/internal/config"
	"github.com/octobees/identity-cache/api/internal/handler"
	middlewarepkg "github.com/octobees/identity-cache/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Profiles  *handler.ProfilesHandler
	Companies *handler.CompaniesHandler
	Docs      *handler.DocsHandler
}

// Register wires all HTTP routes for the API. Health, docs and metrics stay
// open; every data endpoint sits behind the API key.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/docs/api", handlers.Docs.Get)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	secured := e.Group("", middlewarepkg.APIKey(cfg.APIKey))
	secured.Use(middlewarepkg.WriteRateLimiter(cfg.RateLimitWrite))

	secured.POST("/profiles", handlers.Profiles.Upsert)
	secured.GET("/profiles", handlers.Profiles.Get)
	secured.POST("/companies", handlers.Companies.Upsert)
	secured.GET("/companies", handlers.Companies.Get)
}
