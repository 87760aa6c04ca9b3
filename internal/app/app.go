package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qesmsep/noir-reserve/internal/config"
	"github.com/qesmsep/noir-reserve/internal/notify"
	"github.com/qesmsep/noir-reserve/internal/postgres"
	"github.com/qesmsep/noir-reserve/internal/redis"
	postgresrepo "github.com/qesmsep/noir-reserve/internal/repository/postgres"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/service"
	httpgin "github.com/qesmsep/noir-reserve/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	services   *service.Services
	cache      *redisrepo.Cache
	pubsub     *redisrepo.AvailabilityPubSub
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue timezone: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewAvailabilityPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "reservations", cfg.Booking.RateLimitPerMin, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Initialize services
	services := service.NewServices(
		store,
		cache,
		pubsub,
		limiter,
		notify.NewLogGateway(logger),
		logger,
		cfg.Booking,
		loc,
	)

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		cache:    cache,
		pubsub:   pubsub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drop cached availability when another instance books a table
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, date string) {
			if err := a.cache.InvalidateDate(ctx, date, a.cfg.Booking.MaxPartySize); err != nil {
				a.logger.Warn("cache invalidation failed", "date", date, "error", err)
			}
		})
		if err != nil && gCtx.Err() == nil {
			return fmt.Errorf("availability subscription: %w", err)
		}
		return nil
	})

	// Expire stale pending holds
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				if _, err := a.services.Booking.ExpirePending(gCtx); err != nil {
					a.logger.Warn("pending expiry sweep failed", "error", err)
				}
			}
		}
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

// ExpirePendingOnce runs one expiry sweep. Used by the CLI.
func (a *App) ExpirePendingOnce(ctx context.Context) (int64, error) {
	return a.services.Booking.ExpirePending(ctx)
}
