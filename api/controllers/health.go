package controllers

import (
	"net/http"

	"github.com/deisishop/storefront/api/responses"
	"github.com/deisishop/storefront/pkg/config"
	"github.com/deisishop/storefront/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Deisishop-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers ready only when the upstream shop is reachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, shop Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Deisishop-Env", cfg.App.Env)

		if shop != nil {
			if err := shop.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
