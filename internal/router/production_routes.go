package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hatchwise/poultry-hatchery-api/internal/auth"
	"github.com/hatchwise/poultry-hatchery-api/internal/handler"
	"github.com/hatchwise/poultry-hatchery-api/internal/middleware"
)

// RegisterProduction registers the daily production endpoints under
// /api/production: the upsert and the aggregated report. The report is
// the one route where query-keyed caching pays off, and the cache sits
// behind JWTAuth and the role guard so a warmed entry is only ever
// replayed to callers that cleared both.
func RegisterProduction(e *echo.Echo, h *handler.ProductionHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/production", middleware.JWTAuth(jwtSecret), roleGuard(auth.OpProductionManage))

	g.POST("", h.Upsert)
	if cache != nil {
		g.GET("/report", h.Report, cache)
	} else {
		g.GET("/report", h.Report)
	}
}
