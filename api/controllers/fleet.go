package controllers

import (
	"net/http"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
	"github.com/tmtsbahamas/rentals-backend/internal/fleet"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

// CarCategories lists all rental categories.
func CarCategories(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		categories, err := svc.ListCategories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, categories)
	}
}

// Cars lists the whole fleet.
func Cars(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		cars, err := svc.ListCars(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, cars)
	}
}
