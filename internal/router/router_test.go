package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/hatchwise/poultry-hatchery-api/internal/handler"
	"github.com/hatchwise/poultry-hatchery-api/internal/repository"
	"github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

const testSecret = "test-secret"

// warmCache simulates a response cache that already holds an entry for
// every request: it answers from the store without calling the rest of
// the chain, exactly what the real middleware does on a hit.
func warmCache(body string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.JSONBlob(http.StatusOK, []byte(body))
		}
	}
}

func newTestServer(t *testing.T, cache echo.MiddlewareFunc) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	RegisterProduction(e, handler.NewProductionHandler(
		repository.NewProductionRepo(db), repository.NewFlockRepo(db)), testSecret, cache)
	RegisterBreeds(e, handler.NewBreedHandler(repository.NewBreedRepo(db)), testSecret, cache)
	return e
}

// A warmed cache entry must never leak past the guards: requests with
// no token, or with a role outside the route's allowed set, are
// rejected before the cache can answer.
func TestCachedReadsStayBehindGuards(t *testing.T) {
	e := newTestServer(t, warmCache(`{"success":true,"report":[]}`))

	t.Run("no token gets 401, not the cached body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/production/report?type=weekly", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Cache") == "HIT" {
			t.Fatal("cache answered before authentication")
		}
	})

	t.Run("wrong role gets 403, not the cached body", func(t *testing.T) {
		at, err := utils.NewAccessToken(testSecret, 9, "m@example.com", "hatchery_member", 1)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/breeds", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Cache") == "HIT" {
			t.Fatal("cache answered before role enforcement")
		}
	})

	t.Run("authorized caller is served from cache", func(t *testing.T) {
		at, err := utils.NewAccessToken(testSecret, 1, "a@example.com", "admin", 1)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/production/report?type=weekly", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "HIT" {
			t.Fatalf("status = %d, x-cache = %q", rec.Code, rec.Header().Get("X-Cache"))
		}
	})
}

// Registration succeeds without a cache; guards stay in place.
func TestRoutesWithoutCache(t *testing.T) {
	e := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/production/report", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
