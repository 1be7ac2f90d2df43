package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/ziiziikids/ziizii-backend/api/responses"
	"github.com/ziiziikids/ziizii-backend/pkg/config"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
)

// Pinger is satisfied by the db and redis clients.
type Pinger interface {
	Ping(context.Context) error
}

const readinessTimeout = 3 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ZiiZii-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each wired dependency. A nil pinger is reported as
// skipped rather than failing readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ZiiZii-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true

		for name, p := range map[string]Pinger{"database": dbP, "redis": redisP} {
			switch {
			case p == nil:
				checks[name] = "skipped"
			default:
				if err := p.Ping(ctx); err != nil {
					if logg != nil {
						logg.Error(ctx, "readiness check failed: "+name, err)
					}
					checks[name] = "down"
					ready = false
				} else {
					checks[name] = "ok"
				}
			}
		}

		status := "ready"
		httpStatus := http.StatusOK
		if !ready {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
