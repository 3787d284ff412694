package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travel-booking/pkg/middleware"
)

// Metrics holds the Prometheus instruments for the client. All methods are
// nil-safe so tests can pass a nil *Metrics.
type Metrics struct {
	APIRequests       *prometheus.CounterVec
	APIDuration       *prometheus.HistogramVec
	PollCycles        prometheus.Counter
	PollFailures      prometheus.Counter
	BookingsSubmitted prometheus.Counter
	SlipsUploaded     prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		APIRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_client_api_requests_total",
			Help: "Total number of backend API requests by method and outcome",
		}, []string{"method", "outcome"}),

		APIDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travel_client_api_request_duration_seconds",
			Help:    "Duration of backend API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		PollCycles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travel_client_booking_poll_cycles_total",
			Help: "Total number of booking list poll cycles",
		}),

		PollFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travel_client_booking_poll_failures_total",
			Help: "Total number of failed booking list poll cycles",
		}),

		BookingsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travel_client_bookings_submitted_total",
			Help: "Total number of booking requests submitted",
		}),

		SlipsUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travel_client_slips_uploaded_total",
			Help: "Total number of payment slips uploaded",
		}),
	}
}

func (m *Metrics) ObserveAPIRequest(method, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(method, outcome).Inc()
	m.APIDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) IncPollCycle(failed bool) {
	if m == nil {
		return
	}
	m.PollCycles.Inc()
	if failed {
		m.PollFailures.Inc()
	}
}

func (m *Metrics) IncBookingSubmitted() {
	if m == nil {
		return
	}
	m.BookingsSubmitted.Inc()
}

func (m *Metrics) IncSlipUploaded() {
	if m == nil {
		return
	}
	m.SlipsUploaded.Inc()
}

// Serve exposes /metrics and /health on the given port. Blocks; run it in
// its own goroutine.
func Serve(port string, logger *zap.Logger) error {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return http.ListenAndServe(":"+port, r)
}
