package main // Entry point package

import (
	"context" // Context for the startup database calls
	"log"     // Logging library
	"time"    // Timeouts for startup work

	"github.com/joho/godotenv"    // Loads .env files into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/hatchwise/poultry-hatchery-api/internal/config"     // Internal config loader
	"github.com/hatchwise/poultry-hatchery-api/internal/database"   // MySQL connection pool
	"github.com/hatchwise/poultry-hatchery-api/internal/handler"    // HTTP handlers
	"github.com/hatchwise/poultry-hatchery-api/internal/middleware" // Cache and rate limit middleware
	"github.com/hatchwise/poultry-hatchery-api/internal/queue"      // Background production event consumer
	"github.com/hatchwise/poultry-hatchery-api/internal/repository" // Data access layer
	"github.com/hatchwise/poultry-hatchery-api/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single pool.
	users := repository.NewUserRepo(db)
	breeds := repository.NewBreedRepo(db)
	hatcheries := repository.NewHatcheryRepo(db)
	flocks := repository.NewFlockRepo(db)
	productions := repository.NewProductionRepo(db)

	if cfg.SeedAdmin {
		if err := seedAdmin(users, cfg); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
	}

	e := echo.New() // Create Echo instance

	// Redis backs both the token-bucket rate limiter and the response
	// cache. A nil client disables both; the API still serves requests.
	// The limiter is global; the cache is handed to the routers, which
	// attach it per read route behind the auth and role guards — a
	// cache hit short-circuits the chain, so mounting it globally would
	// replay privileged payloads to unauthenticated callers.
	var cache echo.MiddlewareFunc
	rdb := config.NewRedisClient()
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterBreeds(e, handler.NewBreedHandler(breeds), cfg.JWTSecret, cache)
	router.RegisterHatcheries(e, handler.NewHatcheryHandler(hatcheries, users), cfg.JWTSecret, cache)
	router.RegisterFlocks(e, handler.NewFlockHandler(flocks, hatcheries, breeds), cfg.JWTSecret, cache)
	router.RegisterProduction(e, handler.NewProductionHandler(productions, flocks), cfg.JWTSecret, cache)

	// The consumer appends production.recorded events to logs/production.log.
	// It reconnects on broker failure and never takes the server down.
	go func() {
		if err := queue.StartProductionConsumer(); err != nil {
			log.Printf("production consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

// seedAdmin creates the bootstrap admin account when none exists. The
// creation matrix never allows the API itself to mint an admin, so the
// very first one has to come from here.
func seedAdmin(users *repository.UserRepo, cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := users.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Printf("SEED_ADMIN is set but ADMIN_PASSWORD is empty; skipping admin seed")
		return nil
	}
	id, err := users.Create(ctx, "Administrator", cfg.AdminEmail, cfg.AdminPassword, "admin", "", cfg.BcryptCost)
	if err != nil {
		return err
	}
	log.Printf("seeded bootstrap admin %s (id=%d)", cfg.AdminEmail, id)
	return nil
}
