package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/hatchwise/poultry-hatchery-api/internal/auth"       // import the authorization policy tables
	"github.com/hatchwise/poultry-hatchery-api/internal/handler"    // import the handlers that implement business logic
	"github.com/hatchwise/poultry-hatchery-api/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// roleGuard expands an operation's entry in auth.RouteRoles into the
// role-enforcing middleware.  Registering a route under an operation that
// has no entry is a programming error, so it panics at startup rather than
// silently allowing everyone through.
func roleGuard(op string) echo.MiddlewareFunc {
	roles, ok := auth.AllowedRoles(op)
	if !ok {
		panic("router: no role table entry for operation " + op)
	}
	return middleware.RequireRole(roles...)
}

// guarded builds the middleware chain for a cacheable read route: the
// role guard first, then the cache. The order matters — a cache hit
// short-circuits the rest of the chain, so the cache must never sit in
// front of the guards or a warmed entry would be replayed to callers
// that hold no token at all. A nil cache just leaves the guard alone.
func guarded(op string, cache echo.MiddlewareFunc) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{roleGuard(op)}
	if cache != nil {
		mws = append(mws, cache)
	}
	return mws
}

// RegisterAuth registers the authentication endpoints.  Login lives under
// /api/auth and needs no session; register requires a valid token and a
// role allowed to create accounts, since the creation matrix decides which
// roles the requester may hand out.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	// Login issues the access token and sets the HTTP-only cookie.
	g.POST("/login", a.Login)
	// Register is itself a privileged operation: only admins and
	// moderators may create accounts, and the handler further restricts
	// which role the new account may carry.
	g.POST("/register", a.Register, middleware.JWTAuth(jwtSecret), roleGuard(auth.OpRegister))
}
