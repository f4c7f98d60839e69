package controllers

import (
	"net/http"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

// Health reports liveness and database reachability.
func Health(pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if pinger == nil {
			responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}

		if err := pinger.Ping(ctx); err != nil {
			if logg != nil {
				logg.Error(ctx, "health check database ping failed", err)
			}
			responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
