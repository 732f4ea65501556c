package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// FavoriteService is the favorite usecase as seen by the HTTP layer.
type FavoriteService interface {
	ListFavorites(ctx context.Context, filter domain.FavoriteFilter) ([]*domain.Favorite, int64, error)
	ToggleFavorite(ctx context.Context, userID, propertyID string) (*domain.Favorite, bool, error)
}

type FavoriteHandler struct {
	favorites FavoriteService
	logger    *logger.Logger
}

func NewFavoriteHandler(favorites FavoriteService, log *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: log.Named("FavoriteHandler")}
}

type favoriteListResponse struct {
	Favorites []*domain.Favorite `json:"favorites"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// HandleListFavorites serves GET /api/favorites.
func (h *FavoriteHandler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.ListFavorites")
	defer span.End()

	limit, offset, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	filter := domain.FavoriteFilter{
		UserID:     q.Get("userId"),
		PropertyID: q.Get("propertyId"),
		Limit:      limit,
		Offset:     offset,
	}

	favorites, total, err := h.favorites.ListFavorites(ctx, filter)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to fetch favorites")
		return
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	writeJSON(w, http.StatusOK, favoriteListResponse{
		Favorites: favorites,
		Total:     total,
		Page:      page(limit, offset),
		Limit:     limit,
	})
}

// HandleToggleFavorite serves POST /api/favorites. A saved property is
// removed, anything else is added.
func (h *FavoriteHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.ToggleFavorite")
	defer span.End()

	var req struct {
		UserID     string `json:"userId"`
		PropertyID string `json:"propertyId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "userId and propertyId are required")
		return
	}
	span.SetAttributes(attribute.String("user_id", req.UserID), attribute.String("property_id", req.PropertyID))

	favorite, added, err := h.favorites.ToggleFavorite(ctx, req.UserID, req.PropertyID)
	if err != nil {
		respondError(w, h.logger, span, err, "Failed to update favorites")
		return
	}
	if !added {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "Removed from favorites",
			"isFavorite": false,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         favorite.ID,
		"favorite":   favorite,
		"message":    "Added to favorites",
		"isFavorite": true,
	})
}
