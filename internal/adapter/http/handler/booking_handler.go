package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// BookingService is the booking usecase as seen by the HTTP layer.
type BookingService interface {
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error)
	CreateBooking(ctx context.Context, request domain.Document) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

type BookingHandler struct {
	bookings BookingService
	logger   *logger.Logger
}

func NewBookingHandler(bookings BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: log.Named("BookingHandler")}
}

type bookingListResponse struct {
	Bookings []*domain.Booking `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// HandleListBookings serves GET /api/bookings.
func (h *BookingHandler) HandleListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.ListBookings")
	defer span.End()

	limit, offset, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	filter := domain.BookingFilter{
		UserID:     q.Get("userId"),
		PropertyID: q.Get("propertyId"),
		Status:     domain.BookingStatus(q.Get("status")),
		Limit:      limit,
		Offset:     offset,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "Unknown booking status")
		return
	}

	bookings, total, err := h.bookings.ListBookings(ctx, filter)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to fetch bookings")
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookingListResponse{
		Bookings: bookings,
		Total:    total,
		Page:     page(limit, offset),
		Limit:    limit,
	})
}

// HandleCreateBooking serves POST /api/bookings.
func (h *BookingHandler) HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.CreateBooking")
	defer span.End()

	doc, err := decodeDocument(r)
	if err != nil {
		h.logger.Warn("Invalid request body for CreateBooking", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if propertyID, ok := doc["propertyId"].(string); ok {
		span.SetAttributes(attribute.String("property_id", propertyID))
	}

	booking, err := h.bookings.CreateBooking(ctx, doc)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to create booking")
		return
	}
	span.SetAttributes(attribute.String("created_booking_id", booking.ID))
	writeJSON(w, http.StatusCreated, map[string]any{"id": booking.ID, "booking": booking})
}

// HandleUpdateBookingStatus serves PATCH /api/bookings/{id}/status.
func (h *BookingHandler) HandleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.UpdateBookingStatus", oteltrace.WithAttributes(
		attribute.String("booking_id", id),
	))
	defer span.End()

	var req struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.bookings.UpdateBookingStatus(ctx, id, req.Status); err != nil {
		respondError(w, h.logger, span, err, "Failed to update booking")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
