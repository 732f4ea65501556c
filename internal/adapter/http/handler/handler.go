// Package handler holds the chi HTTP handlers of the rental API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/availability"
	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

var tracer = otel.Tracer("rental-service/http-handler")

const (
	defaultLimit = 20
	maxLimit     = 100
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func decodeDocument(r *http.Request) (domain.Document, error) {
	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return doc, nil
}

// respondError maps a usecase error onto a status code. Anything not
// recognised answers 500 with the fixed failure message.
func respondError(w http.ResponseWriter, log *logger.Logger, span oteltrace.Span, err error, failure string) {
	span.RecordError(err)

	var (
		vErr     *domain.ValidationError
		conflict *domain.ConflictError
	)
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "Validation failed", vErr.Errors...)
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, "Property is not available for selected dates", conflict.BookingIDs...)
	case errors.Is(err, domain.ErrDuplicateFavorite):
		writeError(w, http.StatusConflict, "Property is already in favorites")
	case errors.Is(err, domain.ErrBookingConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, availability.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "Check-out date must be after check-in date")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrFeatureDisabled):
		writeError(w, http.StatusNotFound, "Feature not enabled")
	case errors.Is(err, domain.ErrConfigurationUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Database not configured")
	default:
		span.SetStatus(codes.Error, failure)
		log.Error(failure, zap.Error(err))
		writeError(w, http.StatusInternalServerError, failure)
	}
}

// pagination reads limit and offset query parameters.
func pagination(r *http.Request) (limit, offset int, err error) {
	limit, offset = defaultLimit, 0
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

func page(limit, offset int) int {
	return offset/limit + 1
}

func optionalFloat(r *http.Request, key string) (*float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.New(key + " must be a number")
	}
	return &f, nil
}
