package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/usecase"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

// ValidationService is the validation usecase as seen by the HTTP layer.
type ValidationService interface {
	Setup(ctx context.Context) ([]validation.InstallResult, error)
	Report(ctx context.Context) (*usecase.ValidationReport, error)
	Rules(kind validation.Kind) (*validation.RuleSet, bson.M, error)
}

// ValidationHandler serves the schema validation admin endpoints.
type ValidationHandler struct {
	validation ValidationService
	logger     *logger.Logger
}

// NewValidationHandler creates a ValidationHandler.
func NewValidationHandler(svc ValidationService, log *logger.Logger) *ValidationHandler {
	return &ValidationHandler{validation: svc, logger: log.Named("ValidationHandler")}
}

// HandleCheck serves POST /api/validation/check: installs the rules on
// every collection and reports what happened to each.
func (h *ValidationHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.ValidationCheck")
	defer span.End()

	results, err := h.validation.Setup(ctx)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to set up validation")
		return
	}
	message := "Validation rules applied"
	switch applied := validation.Applied(results); {
	case applied == 0:
		message = "No validation rules were applied"
	case applied < len(results):
		message = "Validation rules partially applied"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   message,
		"timestamp": time.Now().UTC(),
		"results":   results,
	})
}

// HandleStats serves GET /api/validation/stats.
func (h *ValidationHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.ValidationStats")
	defer span.End()

	report, err := h.validation.Report(ctx)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to get validation stats")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleRules serves GET /api/validation/rules/{kind}.
func (h *ValidationHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "kind")
	_, span := tracer.Start(r.Context(), "Handler.ValidationRules", oteltrace.WithAttributes(
		attribute.String("kind", raw),
	))
	defer span.End()

	kind, ok := validation.ParseKind(raw)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown document kind")
		return
	}
	set, schema, err := h.validation.Rules(kind)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to get validation rules")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":       set.Kind,
		"collection": set.Collection,
		"level":      set.Level,
		"rules":      set.Rules,
		"validator":  schema,
	})
}

