package controllers

import (
	"net/http"

	"github.com/subslot/subslot-backend/api/responses"
	"github.com/subslot/subslot-backend/pkg/config"
	"github.com/subslot/subslot-backend/pkg/db"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/logger"
	"github.com/subslot/subslot-backend/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)
		responses.WriteData(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the backing stores. Redis is
// optional; a nil client is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unavailable"))
				return
			}
		}

		responses.WriteData(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
