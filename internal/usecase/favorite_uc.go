package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/platform/metrics"
)

// FavoriteUsecase implements saved-listing management.
type FavoriteUsecase struct {
	repo       domain.FavoriteRepository
	properties domain.PropertyRepository
	publisher  domain.EventPublisher
	metrics    *metrics.MetricsManager
	logger     *logger.Logger
}

// NewFavoriteUsecase creates a FavoriteUsecase. metrics may be nil.
func NewFavoriteUsecase(
	repo domain.FavoriteRepository,
	properties domain.PropertyRepository,
	publisher domain.EventPublisher,
	metricsManager *metrics.MetricsManager,
	log *logger.Logger,
) *FavoriteUsecase {
	return &FavoriteUsecase{
		repo:       repo,
		properties: properties,
		publisher:  publisher,
		metrics:    metricsManager,
		logger:     log.Named("FavoriteUsecase"),
	}
}

// ListFavorites returns favorites matching filter. When listing one user's
// favorites the referenced properties are attached.
func (uc *FavoriteUsecase) ListFavorites(ctx context.Context, filter domain.FavoriteFilter) ([]*domain.Favorite, int64, error) {
	filter.Limit = pageLimit(filter.Limit)
	favorites, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.Error(err))
		return nil, 0, repositoryError("list favorites", err)
	}

	if filter.UserID == "" || filter.PropertyID != "" || len(favorites) == 0 {
		return favorites, total, nil
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.PropertyID)
	}
	properties, err := uc.properties.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Failed to load favorite properties", zap.Error(err))
		return nil, 0, repositoryError("load favorite properties", err)
	}
	for _, f := range favorites {
		f.Property = properties[f.PropertyID]
	}
	return favorites, total, nil
}

// ToggleFavorite saves propertyID for userID, or removes it when it was
// already saved. The boolean result is the new state.
func (uc *FavoriteUsecase) ToggleFavorite(ctx context.Context, userID, propertyID string) (*domain.Favorite, bool, error) {
	if userID == "" || propertyID == "" {
		return nil, false, fmt.Errorf("%w: userId and propertyId are required", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.Find(ctx, userID, propertyID)
	switch {
	case err == nil:
		if err := uc.repo.Remove(ctx, existing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("Failed to remove favorite", zap.Error(err))
			return nil, false, repositoryError("remove favorite", err)
		}
		uc.afterToggle(ctx, existing, false)
		return existing, false, nil
	case !errors.Is(err, domain.ErrNotFound):
		uc.logger.Error("Failed to look up favorite", zap.Error(err))
		return nil, false, repositoryError("find favorite", err)
	}

	favorite := &domain.Favorite{
		ID:         uuid.NewString(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.repo.Add(ctx, favorite); err != nil {
		return nil, false, repositoryError("add favorite", err)
	}
	uc.afterToggle(ctx, favorite, true)
	return favorite, true, nil
}

func (uc *FavoriteUsecase) afterToggle(ctx context.Context, favorite *domain.Favorite, added bool) {
	uc.metrics.FavoriteToggled(added)
	if err := uc.publisher.PublishFavoriteToggled(ctx, favorite, added); err != nil {
		uc.logger.Warn("Failed to publish favorite toggled event", zap.Error(err))
	}
}
