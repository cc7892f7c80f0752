package controllers

import (
	"net/http"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	"github.com/rivayastudio/rivaya-backend/pkg/config"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Rivaya-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{"status": "live"})
	}
}

// HealthReady answers ready only when the store responds to a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, store kv.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Rivaya-Env", cfg.App.Env)
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready"})
	}
}
