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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/stationdesk-backend/api/controllers"
	"github.com/angelmondragon/stationdesk-backend/api/routes"
	"github.com/angelmondragon/stationdesk-backend/internal/analytics"
	"github.com/angelmondragon/stationdesk-backend/internal/auth"
	"github.com/angelmondragon/stationdesk-backend/internal/employees"
	"github.com/angelmondragon/stationdesk-backend/internal/expenses"
	"github.com/angelmondragon/stationdesk-backend/internal/fueldeliveries"
	"github.com/angelmondragon/stationdesk-backend/internal/fuelinventory"
	"github.com/angelmondragon/stationdesk-backend/internal/shiftreports"
	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/internal/stations"
	"github.com/angelmondragon/stationdesk-backend/internal/transactions"
	"github.com/angelmondragon/stationdesk-backend/internal/uploads"
	"github.com/angelmondragon/stationdesk-backend/internal/users"
	"github.com/angelmondragon/stationdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/identity"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	"github.com/angelmondragon/stationdesk-backend/pkg/metrics"
	"github.com/angelmondragon/stationdesk-backend/pkg/migrate"
	"github.com/angelmondragon/stationdesk-backend/pkg/redis"
	"github.com/angelmondragon/stationdesk-backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

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

	logg = logger.ForApp("api", cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		if errs != nil {
			logg.Error(context.Background(), "error releasing resources", errs)
		}
	}()

	dbClient := db.Disabled()
	if cfg.DB.Configured() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
	} else {
		logg.Warn(ctx, "database not configured; reads return empty results and writes fail")
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	readiness := []controllers.Dependency{{Name: "database"}, {Name: "redis"}, {Name: "gcs"}}
	if dbClient.Configured() {
		readiness[0].Pinger = dbClient
	}

	var (
		redisClient    *redis.Client
		sessionManager *session.Manager
	)
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readiness[1].Pinger = redisClient

		sessionManager, err = session.NewManager(redisClient, cfg.JWT)
		if err != nil {
			logg.Error(ctx, "failed to create session manager", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured; sessions cannot be revoked server-side and login is not rate limited")
	}

	var objectStore uploads.Uploader
	if !cfg.GCS.Disabled {
		gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "gcs unavailable; employee document uploads are disabled")
		} else {
			objectStore = gcsClient
			readiness[2].Pinger = gcsClient
			closers = append(closers, gcsClient.Close)
		}
	}

	authParams := auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Bootstrap:      auth.BootstrapFromConfig(cfg.Owner),
		Logger:         logg,
	}
	if idp := identity.NewClient(cfg.Identity); idp != nil {
		authParams.Identity = idp
		logg.Info(ctx, "external identity provider enabled")
	}
	if sessionManager != nil {
		authParams.Sessions = sessionManager
	}

	services, err := buildServices(dbClient, authParams, objectStore, cfg)
	if err != nil {
		logg.Error(ctx, "failed to create services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	params := routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		Services:       services,
		Readiness:      readiness,
		Metrics:        metrics.NewRPCMetrics(registry),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	if sessionManager != nil {
		params.Sessions = sessionManager
	}
	if redisClient != nil {
		params.RateLimiter = redisClient
		params.Replays = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(params),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(dbClient *db.Client, authParams auth.ServiceParams, objectStore uploads.Uploader, cfg *config.Config) (routes.Services, error) {
	conn := dbClient.DB()

	authSvc, err := auth.NewService(authParams)
	if err != nil {
		return routes.Services{}, err
	}
	stationSvc, err := stations.NewService(stations.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	employeeSvc, err := employees.NewService(employees.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	shiftSvc, err := shifts.NewService(shifts.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	reportSvc, err := shiftreports.NewService(shiftreports.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	txnSvc, err := transactions.NewService(transactions.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	expenseRepo := expenses.NewRepository(conn)
	expenseSvc, err := expenses.NewService(expenseRepo)
	if err != nil {
		return routes.Services{}, err
	}
	deliverySvc, err := fueldeliveries.NewService(fueldeliveries.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	inventorySvc, err := fuelinventory.NewService(fuelinventory.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	analyticsSvc, err := analytics.NewService(analytics.NewRepository(conn), expenseRepo)
	if err != nil {
		return routes.Services{}, err
	}
	uploadSvc, err := uploads.NewService(objectStore, employeeSvc, cfg.Upload.MaxBytes())
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:          authSvc,
		Stations:      stationSvc,
		Employees:     employeeSvc,
		Shifts:        shiftSvc,
		ShiftReports:  reportSvc,
		Transactions:  txnSvc,
		Expenses:      expenseSvc,
		FuelDelivery:  deliverySvc,
		FuelInventory: inventorySvc,
		Analytics:     analyticsSvc,
		Uploads:       uploadSvc,
	}, nil
}
