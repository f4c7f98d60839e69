package controllers

import (
	"net/http"

	"github.com/tmtsbahamas/rentals-backend/api/responses"
	"github.com/tmtsbahamas/rentals-backend/api/validators"
	"github.com/tmtsbahamas/rentals-backend/internal/mailer"
	pkgerrors "github.com/tmtsbahamas/rentals-backend/pkg/errors"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
)

type adminEmailPayload struct {
	To      string   `json:"to" validate:"required,email"`
	Subject string   `json:"subject" validate:"required"`
	HTML    string   `json:"html" validate:"required"`
	Text    string   `json:"text"`
	CC      []string `json:"cc" validate:"omitempty,dive,email"`
	BCC     []string `json:"bcc" validate:"omitempty,dive,email"`
}

// AdminSendEmail delivers an arbitrary message on behalf of the admin.
// Routes mount it behind the admin key guard.
func AdminSendEmail(mail *mailer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mail == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mail service unavailable"))
			return
		}

		var payload adminEmailPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sent := mail.SendAdminEmail(ctx, mailer.Message{
			To:      payload.To,
			Subject: payload.Subject,
			HTML:    payload.HTML,
			Text:    payload.Text,
			CC:      payload.CC,
			BCC:     payload.BCC,
		})
		if !sent {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "failed to send email"))
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Email sent successfully",
			"success": true,
		})
	}
}
