package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/tmtsbahamas/rentals-backend/api/routes"
	"github.com/tmtsbahamas/rentals-backend/internal/booking"
	"github.com/tmtsbahamas/rentals-backend/internal/fleet"
	"github.com/tmtsbahamas/rentals-backend/internal/mailer"
	"github.com/tmtsbahamas/rentals-backend/pkg/config"
	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
	"github.com/tmtsbahamas/rentals-backend/pkg/metrics"
	"github.com/tmtsbahamas/rentals-backend/pkg/migrate"
	"github.com/tmtsbahamas/rentals-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis is optional; without it rate limiting is off.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(registry)

	mailService := mailer.NewService(newTransport(cfg.Mail), cfg.Mail, logg, apiMetrics)

	fleetService, err := fleet.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create fleet service", err)
		os.Exit(1)
	}

	bookingService, err := booking.NewService(dbClient, mailService, logg, apiMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Metrics:         apiMetrics,
			MetricsGatherer: registry,
			FleetService:    fleetService,
			BookingService:  bookingService,
			MailService:     mailService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "server shutdown failed", err)
		}
	}

	if err := closeAll(dbClient, redisClient); err != nil {
		logg.Error(ctx, "cleanup failed", err)
		os.Exit(1)
	}
}

// newTransport picks the delivery channel from config. Mailgun is the
// default; SMTP is a fallback for deployments without a Mailgun account.
func newTransport(cfg config.MailConfig) mailer.Transport {
	if cfg.Provider == "smtp" {
		return mailer.NewSMTPTransport(cfg)
	}
	return mailer.NewMailgunTransport(cfg)
}

func closeAll(dbClient *db.Client, redisClient *redis.Client) error {
	var errs []error
	if dbClient != nil {
		errs = append(errs, dbClient.Close())
	}
	if redisClient != nil {
		errs = append(errs, redisClient.Close())
	}
	return multierr.Combine(errs...)
}
