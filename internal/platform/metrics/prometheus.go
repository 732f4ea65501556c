package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// MetricsManager holds the service's Prometheus collectors. Its recording
// methods are no-ops on a nil receiver.
type MetricsManager struct {
	Registry               *prometheus.Registry
	PropertiesCreatedTotal prometheus.Counter
	BookingsCreatedTotal   prometheus.Counter
	BookingConflictsTotal  prometheus.Counter
	ValidationRejections   *prometheus.CounterVec
	FavoritesToggledTotal  *prometheus.CounterVec
	APIErrorsTotal         *prometheus.CounterVec
	APILatency             *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers the collectors on a private
// registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	namespace := strings.NewReplacer("-", "_", ".", "_").Replace(serviceName)
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		PropertiesCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "properties_created_total",
			Help:      "Total number of properties created.",
		}),
		BookingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of bookings created.",
		}),
		BookingConflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of booking requests rejected for overlapping dates.",
		}),
		ValidationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Total number of documents rejected by validation, by kind.",
		}, []string{"kind"}),
		FavoritesToggledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_toggled_total",
			Help:      "Total number of favorite toggles, by resulting state.",
		}, []string{"action"}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by route and status.",
		}, []string{"route", "status"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of API requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.PropertiesCreatedTotal,
		m.BookingsCreatedTotal,
		m.BookingConflictsTotal,
		m.ValidationRejections,
		m.FavoritesToggledTotal,
		m.APIErrorsTotal,
		m.APILatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) PropertyCreated() {
	if m != nil {
		m.PropertiesCreatedTotal.Inc()
	}
}

func (m *MetricsManager) BookingCreated() {
	if m != nil {
		m.BookingsCreatedTotal.Inc()
	}
}

func (m *MetricsManager) BookingConflict() {
	if m != nil {
		m.BookingConflictsTotal.Inc()
	}
}

func (m *MetricsManager) ValidationRejected(kind string) {
	if m != nil {
		m.ValidationRejections.WithLabelValues(kind).Inc()
	}
}

func (m *MetricsManager) FavoriteToggled(added bool) {
	if m == nil {
		return
	}
	action := "removed"
	if added {
		action = "added"
	}
	m.FavoritesToggledTotal.WithLabelValues(action).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on port until the server fails. It
// returns nil immediately when port is empty.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
