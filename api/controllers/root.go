package controllers

import (
	"net/http"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Root serves the liveness banner.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": Version,
		})
	}
}
