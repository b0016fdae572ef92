package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/hazolabs/storefront-backend/api/responses"
	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources; any failed check returns 503 with the
// per-check breakdown.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP interface {
	Ping(context.Context) error
}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["db"] = err.Error()
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness db check failed", err)
				}
			} else {
				checks["db"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness redis check failed", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteJSON(w, status, map[string]any{"status": state, "checks": checks})
	}
}
