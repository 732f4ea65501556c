package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/MongoPete/airbnb-clone/internal/adapter/http/handler"
)

// SetupPropertyRoutes mounts the listing routes.
func SetupPropertyRoutes(r chi.Router, h *handler.PropertyHandler) {
	r.Route("/api/properties", func(r chi.Router) {
		r.Get("/", h.HandleSearchProperties)
		r.Post("/", h.HandleCreateProperty)
		r.Get("/{id}", h.HandleGetProperty)
		r.Delete("/{id}", h.HandleDeleteProperty)
	})
}

// SetupBookingRoutes mounts the reservation routes.
func SetupBookingRoutes(r chi.Router, h *handler.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", h.HandleListBookings)
		r.Post("/", h.HandleCreateBooking)
		r.Patch("/{id}/status", h.HandleUpdateBookingStatus)
	})
}

func SetupFavoriteRoutes(r chi.Router, h *handler.FavoriteHandler) {
	r.Get("/api/favorites", h.HandleListFavorites)
	r.Post("/api/favorites", h.HandleToggleFavorite)
}

// SetupValidationRoutes mounts the schema validation admin routes. The
// handlers answer 404 while schema validation is switched off.
func SetupValidationRoutes(r chi.Router, h *handler.ValidationHandler) {
	r.Route("/api/validation", func(r chi.Router) {
		r.Post("/check", h.HandleCheck)
		r.Get("/stats", h.HandleStats)
		r.Get("/rules/{kind}", h.HandleRules)
	})
}
