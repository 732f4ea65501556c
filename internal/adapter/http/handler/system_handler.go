package handler

import (
	"net/http"
	"time"

	"github.com/MongoPete/airbnb-clone/internal/features"
)

// FeatureCatalog exposes flag state and documentation.
type FeatureCatalog interface {
	IsEnabled(feature features.Feature) bool
	Info(feature features.Feature) (features.Metadata, bool)
}

type SystemHandler struct {
	flags       FeatureCatalog
	serviceName string
}

func NewSystemHandler(flags FeatureCatalog, serviceName string) *SystemHandler {
	return &SystemHandler{flags: flags, serviceName: serviceName}
}

type featureView struct {
	Feature features.Feature `json:"feature"`
	Enabled bool             `json:"enabled"`
	features.Metadata
}

// HandleFeatures serves GET /api/features.
func (h *SystemHandler) HandleFeatures(w http.ResponseWriter, r *http.Request) {
	views := make([]featureView, 0, len(features.All))
	enabled := make([]features.Feature, 0, len(features.All))
	for _, f := range features.All {
		meta, _ := h.flags.Info(f)
		on := h.flags.IsEnabled(f)
		views = append(views, featureView{Feature: f, Enabled: on, Metadata: meta})
		if on {
			enabled = append(enabled, f)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"features": views,
		"enabled":  enabled,
	})
}

// HandleHealth serves GET /health.
func (h *SystemHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   h.serviceName,
		"timestamp": time.Now().UTC(),
	})
}
