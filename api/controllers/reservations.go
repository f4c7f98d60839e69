package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
	"github.com/tmtsbahamas/rentals-backend/api/validators"
	"github.com/tmtsbahamas/rentals-backend/internal/booking"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
	"github.com/tmtsbahamas/rentals-backend/pkg/pagination"
)

// createReservationPayload carries the raw booking request. Field presence
// is checked by the service so the error precedence matches the endpoint
// contract; dates stay strings until the car checks pass.
type createReservationPayload struct {
	CarID      uint    `json:"car_id"`
	Firstname  string  `json:"firstname"`
	Lastname   string  `json:"lastname"`
	Email      string  `json:"email"`
	Home       *string `json:"home"`
	Cell       *string `json:"cell"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
}

// CreateReservation books a car.
func CreateReservation(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		var payload createReservationPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Create(ctx, booking.CreateInput{
			CarID:      payload.CarID,
			Firstname:  payload.Firstname,
			Lastname:   payload.Lastname,
			Email:      payload.Email,
			Home:       payload.Home,
			Cell:       payload.Cell,
			StartDate:  payload.StartDate,
			EndDate:    payload.EndDate,
			TotalPrice: decimal.NewFromFloat(payload.TotalPrice),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":        "Reservation created successfully",
			"reservation_id": result.ReservationID,
			"email_sent":     result.EmailSent,
		})
	}
}

// ListReservations returns all bookings plus a Content-Range header
// spanning the full set.
func ListReservations(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		reservations, total, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pagination.SetContentRange(w, "reservations", total)
		responses.WriteJSON(w, http.StatusOK, reservations)
	}
}

// CancelReservation releases the booking and restores availability.
func CancelReservation(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		id, err := validators.ParseURLUint(chi.URLParam(r, "id"), "reservation id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Cancel(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Reservation cancelled successfully",
		})
	}
}
