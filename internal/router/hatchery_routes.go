package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hatchwise/poultry-hatchery-api/internal/auth"
	"github.com/hatchwise/poultry-hatchery-api/internal/handler"
	"github.com/hatchwise/poultry-hatchery-api/internal/middleware"
)

// RegisterHatcheries registers the hatchery endpoints under /api/hatcheries.
// Admins and moderators manage hatcheries; deletion is reserved for admins
// because it cascades through ownership and registration records. Read
// routes take the cache middleware behind the guards.
func RegisterHatcheries(e *echo.Echo, h *handler.HatcheryHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/hatcheries", middleware.JWTAuth(jwtSecret))

	// The flocks projection must be registered before /:id so Echo does
	// not match "flocks" as a hatchery id.
	g.GET("/flocks", h.ListWithFlocks, guarded(auth.OpHatcheryManage, cache)...)

	g.POST("", h.Create, roleGuard(auth.OpHatcheryManage))
	g.GET("", h.List, guarded(auth.OpHatcheryManage, cache)...)
	g.GET("/:id", h.GetByID, guarded(auth.OpHatcheryManage, cache)...)
	g.PUT("/:id", h.Update, roleGuard(auth.OpHatcheryManage))
	g.DELETE("/:id", h.Delete, roleGuard(auth.OpHatcheryDelete))
}
