package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// PropertyService is the property usecase as seen by the HTTP layer.
type PropertyService interface {
	SearchProperties(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, int64, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, doc domain.Document) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

type PropertyHandler struct {
	properties PropertyService
	logger     *logger.Logger
}

func NewPropertyHandler(properties PropertyService, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: log.Named("PropertyHandler")}
}

type propertyListResponse struct {
	Properties []*domain.Property `json:"properties"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// HandleSearchProperties serves GET /api/properties.
func (h *PropertyHandler) HandleSearchProperties(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.SearchProperties")
	defer span.End()

	limit, offset, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	minPrice, err := optionalFloat(r, "priceMin")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxPrice, err := optionalFloat(r, "priceMax")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	filter := domain.PropertyFilter{
		Search:       q.Get("search"),
		Location:     q.Get("location"),
		PropertyType: q.Get("type"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Limit:        limit,
		Offset:       offset,
	}
	span.SetAttributes(attribute.String("search", filter.Search), attribute.Int("limit", limit))

	properties, total, err := h.properties.SearchProperties(ctx, filter)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to fetch properties")
		return
	}
	if properties == nil {
		properties = []*domain.Property{}
	}
	writeJSON(w, http.StatusOK, propertyListResponse{
		Properties: properties,
		Total:      total,
		Page:       page(limit, offset),
		Limit:      limit,
	})
}

// HandleGetProperty serves GET /api/properties/{id}.
func (h *PropertyHandler) HandleGetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.GetProperty", oteltrace.WithAttributes(
		attribute.String("property_id", id),
	))
	defer span.End()

	property, err := h.properties.GetProperty(ctx, id)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to fetch property")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// HandleCreateProperty serves POST /api/properties.
func (h *PropertyHandler) HandleCreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.CreateProperty")
	defer span.End()

	doc, err := decodeDocument(r)
	if err != nil {
		h.logger.Warn("Invalid request body for CreateProperty", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	property, err := h.properties.CreateProperty(ctx, doc)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to create property")
		return
	}
	span.SetAttributes(attribute.String("created_property_id", property.ID))
	writeJSON(w, http.StatusCreated, map[string]any{"id": property.ID, "property": property})
}

// HandleDeleteProperty serves DELETE /api/properties/{id}.
func (h *PropertyHandler) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.DeleteProperty", oteltrace.WithAttributes(
		attribute.String("property_id", id),
	))
	defer span.End()

	if err := h.properties.DeleteProperty(ctx, id); err != nil {
		respondError(w, h.logger, span, err, "Failed to delete property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
