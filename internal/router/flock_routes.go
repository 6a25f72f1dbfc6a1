package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hatchwise/poultry-hatchery-api/internal/auth"
	"github.com/hatchwise/poultry-hatchery-api/internal/handler"
	"github.com/hatchwise/poultry-hatchery-api/internal/middleware"
)

// RegisterFlocks registers the flock endpoints under /api/flocks.
func RegisterFlocks(e *echo.Echo, h *handler.FlockHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/flocks", middleware.JWTAuth(jwtSecret))

	g.POST("", h.Create, roleGuard(auth.OpFlockManage))
	g.GET("", h.List, guarded(auth.OpFlockManage, cache)...)
}
