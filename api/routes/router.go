package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/stationdesk-backend/api/controllers"
	"github.com/angelmondragon/stationdesk-backend/api/middleware"
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
	"github.com/angelmondragon/stationdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	"github.com/angelmondragon/stationdesk-backend/pkg/metrics"
)

// base64 inflates payloads by 4/3; the rest covers the JSON envelope.
const uploadEnvelopeOverhead = 1 << 20

type rateLimitStore interface {
	CountAttempt(ctx context.Context, name string, window time.Duration) (int64, error)
}

type replayStore interface {
	ClaimReplay(ctx context.Context, scope, value string, ttl time.Duration) (bool, error)
	LoadReplay(ctx context.Context, scope string) (string, bool, error)
	SaveReplay(ctx context.Context, scope, value string, ttl time.Duration) error
	DropReplay(ctx context.Context, scope string) error
}

// replayableProcedures post money or stock movements, where a retried
// request must not be booked twice.
var replayableProcedures = []string{
	"transactions.create",
	"expenses.create",
	"fuelDeliveries.create",
	"shiftReports.create",
	"upload.uploadEmployeeDocument",
}

// Services groups the domain services exposed over RPC.
type Services struct {
	Auth          auth.Service
	Stations      stations.Service
	Employees     employees.Service
	Shifts        shifts.Service
	ShiftReports  shiftreports.Service
	Transactions  transactions.Service
	Expenses      expenses.Service
	FuelDelivery  fueldeliveries.Service
	FuelInventory fuelinventory.Service
	Analytics     analytics.Service
	Uploads       uploads.Service
}

// RouterParams carries everything NewRouter wires. Sessions, RateLimiter,
// Replays, Metrics and MetricsHandler are optional.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	Services       Services
	Sessions       session.AccessSessionChecker
	RateLimiter    rateLimitStore
	Replays        replayStore
	Readiness      []controllers.Dependency
	Metrics        *metrics.RPCMetrics
	MetricsHandler http.Handler
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Readiness...))
	})
	if p.MetricsHandler != nil {
		r.Handle("/metrics", p.MetricsHandler)
	}

	registry := NewRegistry(p.Services, cfg, logg)

	loginThrottle := middleware.ForProcedures(middleware.LoginThrottle(cfg.AuthRateLimit, p.RateLimiter, logg), "auth.login")
	replays := middleware.ForProcedures(middleware.Idempotency(p.Replays, cfg.Idempotency.TTL, logg), replayableProcedures...)

	r.Route("/api/rpc", func(r chi.Router) {
		r.Use(middleware.RPCMetrics(p.Metrics, registry.Known))
		r.Use(middleware.LimitBody(cfg.Upload.MaxBytes()*4/3 + uploadEnvelopeOverhead))
		r.Use(middleware.Auth(cfg.JWT, cfg.Session.CookieName, p.Sessions, logg))

		r.With(loginThrottle).Get("/{"+middleware.ProcedureParam+"}", registry.ServeHTTP)
		r.With(loginThrottle, replays).Post("/{"+middleware.ProcedureParam+"}", registry.ServeHTTP)
	})

	return r
}

// NewRegistry registers every RPC procedure against the supplied services.
func NewRegistry(svcs Services, cfg *config.Config, logg *logger.Logger) *controllers.Registry {
	cookie := controllers.CookieSettings{Name: cfg.Session.CookieName, TTL: cfg.JWT.SessionTTL}

	registry := controllers.NewRegistry(logg)
	registry.Register(controllers.SystemProcedures(logg)...)
	registry.Register(controllers.AuthProcedures(svcs.Auth, cookie, logg)...)
	registry.Register(controllers.StationProcedures(svcs.Stations, logg)...)
	registry.Register(controllers.EmployeeProcedures(svcs.Employees, logg)...)
	registry.Register(controllers.ShiftProcedures(svcs.Shifts, logg)...)
	registry.Register(controllers.ShiftReportProcedures(svcs.ShiftReports, logg)...)
	registry.Register(controllers.TransactionProcedures(svcs.Transactions, logg)...)
	registry.Register(controllers.ExpenseProcedures(svcs.Expenses, logg)...)
	registry.Register(controllers.FuelDeliveryProcedures(svcs.FuelDelivery, logg)...)
	registry.Register(controllers.FuelInventoryProcedures(svcs.FuelInventory, logg)...)
	registry.Register(controllers.AnalyticsProcedures(svcs.Analytics, logg)...)
	registry.Register(controllers.UploadProcedures(svcs.Uploads, logg)...)
	return registry
}
