package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/cine-reservas/internal/config"
	"github.com/iliyamo/cine-reservas/internal/database"
	"github.com/iliyamo/cine-reservas/internal/handler"
	"github.com/iliyamo/cine-reservas/internal/middleware"
	"github.com/iliyamo/cine-reservas/internal/queue"
	"github.com/iliyamo/cine-reservas/internal/repository"
	"github.com/iliyamo/cine-reservas/internal/router"
	"github.com/iliyamo/cine-reservas/internal/service"
)

func main() {
	_ = godotenv.Load() // best effort; real deployments set the environment directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Repositories share the one connection pool.
	movieRepo := repository.NewMovieRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	screeningRepo := repository.NewScreeningRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	// The reservation core.
	ledger := service.NewSeatLedger(seatRepo, bookingRepo)
	bookingSvc := service.NewBookingService(db, screeningRepo, customerRepo, bookingRepo, ledger)
	screeningSvc := service.NewScreeningService(db, screeningRepo, bookingRepo, customerRepo, ledger, queue.NewPublisher())
	availabilitySvc := service.NewAvailabilityService(screeningRepo)

	// Redis is optional: with no client both middlewares degrade to
	// pass-throughs and the API keeps working uncached and unlimited.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	readCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	writeLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background consumer turning cancellation events into the
	// notifications log. Runs its own reconnect loop forever.
	go func() {
		if err := queue.StartCancellationConsumer(); err != nil {
			log.Printf("cancellation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, &handler.Readiness{DB: db})
	router.RegisterAPI(e,
		handler.NewCatalogHandler(movieRepo, roomRepo, seatRepo, customerRepo),
		handler.NewScreeningHandler(screeningSvc, screeningRepo, movieRepo, roomRepo),
		handler.NewBookingHandler(bookingSvc),
		handler.NewAvailabilityHandler(availabilitySvc),
		readCache, writeLimit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
