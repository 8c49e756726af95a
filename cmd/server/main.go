package main // Entry point package

import (
	"context"   // graceful shutdown deadlines
	"log"       // Logging library
	"net/http"  // http.ErrServerClosed
	"os/signal" // SIGINT/SIGTERM handling
	"syscall"   // signal constants
	"time"      // shutdown budget

	"github.com/joho/godotenv"    // .env file loader
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/cache"      // availability slot cache
	"github.com/iliyamo/restaurant-table-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/restaurant-table-reservation/internal/database"   // MySQL connection
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware" // rate limiting
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"      // notification consumer
	"github.com/iliyamo/restaurant-table-reservation/internal/repository" // data access layer
	"github.com/iliyamo/restaurant-table-reservation/internal/router"     // Internal router setup
	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling" // reservation engine
	"github.com/iliyamo/restaurant-table-reservation/internal/service"    // queue publisher
	"github.com/iliyamo/restaurant-table-reservation/internal/worker"     // retirement sweep
)

func main() {
	// Load a local .env when present; real deployments set the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs both rate limiting and the slot cache.  A nil client
	// disables both; the service keeps working without them.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and slot caching disabled")
	} else {
		defer rdb.Close()
	}

	store := repository.NewStore(db)

	var slots scheduling.AvailabilityCache
	if cacheCfg := config.LoadSlotCacheConfig(); cacheCfg.Enabled && rdb != nil {
		slots = cache.NewSlotCache(rdb, cacheCfg.TTL)
	}

	notifier := service.NewNotifier(cfg.AMQPURL)
	engine := scheduling.NewEngine(store, slots, notifier, scheduling.RealClock{}, cfg.TimeZone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background reservation retirement.
	retirement := &worker.Retirement{
		Repo:     store.Reservations(),
		Clock:    scheduling.RealClock{},
		Interval: cfg.RetireInterval,
		Timeout:  cfg.RetireTimeout,
		Eligible: cfg.RetireEligible,
	}
	go func() {
		if err := retirement.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("retirement worker stopped: %v", err)
		}
	}()

	// Notification consumer reconnects on its own; run it for the
	// lifetime of the process.
	go func() {
		if err := queue.StartNotificationConsumer(cfg.AMQPURL); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled && rdb != nil {
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}

	dev := cfg.IsDevelopment()
	restaurants := handler.NewRestaurantHandler(store.Restaurants(), store.Tables(), cfg.TimeZone, dev)
	availability := handler.NewAvailabilityHandler(engine, dev)
	reservations := handler.NewReservationHandler(engine, dev)

	router.RegisterRoutes(e) // Register application routes
	router.RegisterAPI(e, restaurants, availability, reservations)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
