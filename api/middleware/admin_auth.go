package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

const adminKeyHeader = "X-Admin-Key"

// AdminAuth guards admin endpoints with a shared secret header. With no
// key configured the endpoints are disabled outright.
func AdminAuth(apiKey string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if apiKey == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Admin access is not configured"))
				return
			}

			supplied := r.Header.Get(adminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
				if logg != nil {
					logg.Warn(ctx, "admin auth rejected")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
