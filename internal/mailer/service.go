package mailer

import (
	"context"

	"github.com/tmtsbahamas/rentals-backend/pkg/config"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
	"github.com/tmtsbahamas/rentals-backend/pkg/metrics"
)

// Service renders and delivers the application's emails. Delivery is best
// effort: failures are logged and surfaced as a boolean so callers never
// fail a booking over a mail outage.
type Service struct {
	transport Transport
	cfg       config.MailConfig
	logg      *logger.Logger
	metrics   *metrics.APIMetrics
}

func NewService(transport Transport, cfg config.MailConfig, logg *logger.Logger, m *metrics.APIMetrics) *Service {
	if logg == nil {
		panic("mailer: logger is required")
	}
	return &Service{transport: transport, cfg: cfg, logg: logg, metrics: m}
}

// AdminEmail exposes the configured admin mailbox for callers composing
// admin-targeted mail.
func (s *Service) AdminEmail() string {
	return s.cfg.AdminEmail
}

// SendBookingConfirmation emails the customer their confirmation and
// receipt, blind-copying the admin mailbox. Returns whether delivery
// succeeded.
func (s *Service) SendBookingConfirmation(ctx context.Context, details BookingDetails) bool {
	msg, err := renderBookingConfirmation(details)
	if err != nil {
		s.logg.Error(ctx, "rendering booking confirmation", err)
		s.metrics.IncEmail("booking_confirmation", false)
		return false
	}
	if s.cfg.AdminEmail != "" {
		msg.BCC = append(msg.BCC, s.cfg.AdminEmail)
	}
	return s.send(ctx, "booking_confirmation", msg)
}

// ContactResult reports the two independent deliveries a contact form
// submission triggers.
type ContactResult struct {
	AdminNotified      bool
	SubmitterConfirmed bool
}

// SendContactMessages notifies the admin mailbox and sends the submitter a
// confirmation. The two sends are independent; one failing does not stop
// the other.
func (s *Service) SendContactMessages(ctx context.Context, sub ContactSubmission) ContactResult {
	var result ContactResult

	if adminMsg, err := renderContactAdmin(sub, s.cfg.AdminEmail); err != nil {
		s.logg.Error(ctx, "rendering contact admin notification", err)
		s.metrics.IncEmail("contact_admin", false)
	} else {
		result.AdminNotified = s.send(ctx, "contact_admin", adminMsg)
	}

	if confirmMsg, err := renderContactConfirmation(sub); err != nil {
		s.logg.Error(ctx, "rendering contact confirmation", err)
		s.metrics.IncEmail("contact_confirmation", false)
	} else {
		result.SubmitterConfirmed = s.send(ctx, "contact_confirmation", confirmMsg)
	}

	return result
}

// SendAdminEmail delivers an arbitrary message composed through the admin
// endpoint.
func (s *Service) SendAdminEmail(ctx context.Context, msg Message) bool {
	return s.send(ctx, "admin_custom", msg)
}

func (s *Service) send(ctx context.Context, template string, msg Message) bool {
	if s.transport == nil || !s.transport.Configured() {
		s.logg.Warn(ctx, "email transport not configured, skipping send")
		s.metrics.IncEmail(template, false)
		return false
	}

	if err := s.transport.Send(ctx, msg); err != nil {
		s.logg.Error(ctx, "sending email", err)
		s.metrics.IncEmail(template, false)
		return false
	}

	s.logg.Info(ctx, "email sent")
	s.metrics.IncEmail(template, true)
	return true
}
