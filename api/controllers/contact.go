package controllers

import (
	"net/http"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
	"github.com/tmtsbahamas/rentals-backend/api/validators"
	"github.com/tmtsbahamas/rentals-backend/internal/mailer"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

type contactPayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// Contact fans a contact form submission out to the admin mailbox and a
// submitter confirmation.
func Contact(mail *mailer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mail == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mail service unavailable"))
			return
		}

		var payload contactPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result := mail.SendContactMessages(ctx, mailer.ContactSubmission{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Message: payload.Message,
		})
		if !result.AdminNotified {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "failed to send message"))
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Message sent successfully",
			"success": true,
		})
	}
}
