package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records request latency and the booking/email counters.
type APIMetrics struct {
	requestDuration  *prometheus.HistogramVec
	bookingsCreated  prometheus.Counter
	bookingsCanceled prometheus.Counter
	emailsSent       *prometheus.CounterVec
}

// NewAPIMetrics registers the API metrics on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Reservations successfully created.",
	})
	bookingsCanceled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_canceled_total",
		Help: "Reservations canceled.",
	})
	emailsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Outbound email attempts by result.",
	}, []string{"template", "result"})
	reg.MustRegister(requestDuration, bookingsCreated, bookingsCanceled, emailsSent)
	return &APIMetrics{
		requestDuration:  requestDuration,
		bookingsCreated:  bookingsCreated,
		bookingsCanceled: bookingsCanceled,
		emailsSent:       emailsSent,
	}
}

// ObserveRequest records the duration of one handled request.
func (m *APIMetrics) ObserveRequest(method, path, status string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncBookingCreated increments the created-bookings counter.
func (m *APIMetrics) IncBookingCreated() {
	if m == nil || m.bookingsCreated == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// IncBookingCanceled increments the canceled-bookings counter.
func (m *APIMetrics) IncBookingCanceled() {
	if m == nil || m.bookingsCanceled == nil {
		return
	}
	m.bookingsCanceled.Inc()
}

// IncEmail records one email attempt for the named template.
func (m *APIMetrics) IncEmail(template string, ok bool) {
	if m == nil || m.emailsSent == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.emailsSent.WithLabelValues(template, result).Inc()
}
