package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tmtsbahamas/rentals-backend/api/controllers"
	"github.com/tmtsbahamas/rentals-backend/api/middleware"
	"github.com/tmtsbahamas/rentals-backend/internal/booking"
	"github.com/tmtsbahamas/rentals-backend/internal/fleet"
	"github.com/tmtsbahamas/rentals-backend/internal/mailer"
	"github.com/tmtsbahamas/rentals-backend/pkg/config"
	"github.com/tmtsbahamas/rentals-backend/pkg/db"
	"github.com/tmtsbahamas/rentals-backend/pkg/logger"
	"github.com/tmtsbahamas/rentals-backend/pkg/metrics"
	"github.com/tmtsbahamas/rentals-backend/pkg/redis"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Metrics         *metrics.APIMetrics
	MetricsGatherer prometheus.Gatherer
	FleetService    fleet.Service
	BookingService  booking.Service
	MailService     *mailer.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(deps.Metrics),
	)

	bookingPolicy := middleware.NewRateLimitPolicy(
		"booking",
		cfg.RateLimit.BookingWindow,
		cfg.RateLimit.BookingIPLimit,
	)
	contactPolicy := middleware.NewRateLimitPolicy(
		"contact",
		cfg.RateLimit.ContactWindow,
		cfg.RateLimit.ContactIPLimit,
	)

	// The redis client is optional; a nil store turns rate limiting off.
	limiterStore := deps.Redis

	r.Get("/", controllers.Root())
	r.Get("/health", controllers.Health(deps.DB, logg))

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/car-categories", controllers.CarCategories(deps.FleetService, logg))
	r.Get("/cars", controllers.Cars(deps.FleetService, logg))

	r.Route("/reservations", func(r chi.Router) {
		r.With(rateLimit(bookingPolicy, limiterStore, logg)).Post("/", controllers.CreateReservation(deps.BookingService, logg))
		r.Get("/", controllers.ListReservations(deps.BookingService, logg))
		r.Delete("/{id}", controllers.CancelReservation(deps.BookingService, logg))
	})

	r.With(rateLimit(contactPolicy, limiterStore, logg)).Post("/contact", controllers.Contact(deps.MailService, logg))

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.Admin.APIKey, logg))
		r.Post("/send-email", controllers.AdminSendEmail(deps.MailService, logg))
	})

	return r
}

func rateLimit(policy middleware.RateLimitPolicy, store *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return middleware.RateLimit(policy, nil, logg)
	}
	return middleware.RateLimit(policy, store, logg)
}
