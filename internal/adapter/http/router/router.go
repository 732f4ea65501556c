// Package router assembles the chi mux of the rental API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MongoPete/airbnb-clone/internal/adapter/http/handler"
	"github.com/MongoPete/airbnb-clone/internal/adapter/http/middleware"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/platform/metrics"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Properties *handler.PropertyHandler
	Bookings   *handler.BookingHandler
	Favorites  *handler.FavoriteHandler
	Validation *handler.ValidationHandler
	System     *handler.SystemHandler
}

// New builds the mux with the shared middleware stack and every route.
func New(h Handlers, appLogger *logger.Logger, metricsManager *metrics.MetricsManager) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Metrics(metricsManager))
	r.Use(chimw.Recoverer)

	r.Get("/health", h.System.HandleHealth)
	r.Get("/api/features", h.System.HandleFeatures)
	if metricsManager != nil {
		r.Method(http.MethodGet, "/metrics", metricsManager.Handler())
	}

	SetupPropertyRoutes(r, h.Properties)
	SetupBookingRoutes(r, h.Bookings)
	SetupFavoriteRoutes(r, h.Favorites)
	SetupValidationRoutes(r, h.Validation)
	return r
}
