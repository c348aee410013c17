package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/stationdesk-backend/api/responses"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is implemented by every backing service the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency names a backing service. A nil Pinger means the service is not
// configured and is reported as disabled.
type Dependency struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StationDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency and fails with
// DEPENDENCY_ERROR when any of them is unreachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StationDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		failed := false
		for _, dep := range deps {
			if dep.Pinger == nil {
				checks[dep.Name] = "disabled"
				continue
			}
			if err := dep.Pinger.Ping(ctx); err != nil {
				checks[dep.Name] = "error"
				failed = true
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"dependency": dep.Name, "error": err.Error()}), "readiness check failed")
				}
				continue
			}
			checks[dep.Name] = "ok"
		}

		if failed {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// SystemProcedures serves the public system namespace.
func SystemProcedures(logg *logger.Logger) []Procedure {
	return []Procedure{
		{
			Name:   "system.health",
			Kind:   Query,
			Access: Public,
			Handler: handleNoInput(logg, func(context.Context) (map[string]string, error) {
				return map[string]string{"status": "ok"}, nil
			}),
		},
	}
}
