package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hatchwise/poultry-hatchery-api/internal/auth"
	"github.com/hatchwise/poultry-hatchery-api/internal/handler"
	"github.com/hatchwise/poultry-hatchery-api/internal/middleware"
)

// RegisterBreeds registers the breed catalogue endpoints under /api/breeds.
// The whole resource, reads included, is admin-only: breeds carry the
// reference performance rates the reports are judged against, so they are
// curated centrally. The cache middleware, when given, is attached to read
// routes behind the guards so only requests that passed authentication and
// role checks can be served from cache.
func RegisterBreeds(e *echo.Echo, h *handler.BreedHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/breeds", middleware.JWTAuth(jwtSecret))

	g.POST("", h.Create, roleGuard(auth.OpBreedWrite))
	g.GET("", h.List, guarded(auth.OpBreedRead, cache)...)
	g.GET("/:id", h.GetByID, guarded(auth.OpBreedRead, cache)...)
	g.PUT("/:id", h.Update, roleGuard(auth.OpBreedWrite))
	g.DELETE("/:id", h.Delete, roleGuard(auth.OpBreedWrite))
}
