package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/platform/metrics"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

// PropertyUsecase implements listing search and management.
type PropertyUsecase struct {
	repo      domain.PropertyRepository
	cache     domain.PropertyCache
	validator DocumentValidator
	publisher domain.EventPublisher
	flags     FeatureFlags
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

// NewPropertyUsecase creates a PropertyUsecase. cache and metrics may be nil.
func NewPropertyUsecase(
	repo domain.PropertyRepository,
	cache domain.PropertyCache,
	validator DocumentValidator,
	publisher domain.EventPublisher,
	flags FeatureFlags,
	metricsManager *metrics.MetricsManager,
	log *logger.Logger,
) *PropertyUsecase {
	return &PropertyUsecase{
		repo:      repo,
		cache:     cache,
		validator: validator,
		publisher: publisher,
		flags:     flags,
		metrics:   metricsManager,
		logger:    log.Named("PropertyUsecase"),
	}
}

// SearchProperties lists properties matching filter. Free-text and location
// matching only apply while simple search is enabled.
func (uc *PropertyUsecase) SearchProperties(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, int64, error) {
	filter.Limit = pageLimit(filter.Limit)
	if !uc.flags.IsEnabled(features.SimpleSearch) {
		filter.Search = ""
		filter.Location = ""
	}

	properties, total, err := uc.repo.Search(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to search properties", zap.Error(err))
		return nil, 0, repositoryError("search properties", err)
	}
	return properties, total, nil
}

// GetProperty returns one property, reading through the cache.
func (uc *PropertyUsecase) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("Property cache read failed", zap.String("property_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	property, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repositoryError("get property", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, property); err != nil {
			uc.logger.Warn("Property cache write failed", zap.String("property_id", id), zap.Error(err))
		}
	}
	return property, nil
}

// CreateProperty validates doc, stores it under a new ID and announces it.
func (uc *PropertyUsecase) CreateProperty(ctx context.Context, doc domain.Document) (*domain.Property, error) {
	now := time.Now().UTC()
	doc = copyDocument(doc)
	doc.Set("_id", uuid.NewString())
	doc.Set("created_at", now)
	doc.Set("updated_at", now)

	result, err := uc.validator.Validate(validation.KindProperty, doc)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		uc.metrics.ValidationRejected(string(validation.KindProperty))
		uc.logger.Info("Property rejected by validation", zap.Strings("errors", result.Errors))
		return nil, &domain.ValidationError{Kind: string(validation.KindProperty), Errors: result.Errors}
	}

	property := domain.PropertyFromDocument(doc)
	if err := uc.repo.Create(ctx, property); err != nil {
		uc.logger.Error("Failed to save property", zap.Error(err))
		return nil, repositoryError("create property", err)
	}
	uc.metrics.PropertyCreated()

	if err := uc.publisher.PublishPropertyCreated(ctx, property); err != nil {
		uc.logger.Warn("Failed to publish property created event", zap.Error(err), zap.String("property_id", property.ID))
	}

	uc.logger.Info("Property created", zap.String("property_id", property.ID))
	return property, nil
}

// DeleteProperty removes a property and evicts it from the cache.
func (uc *PropertyUsecase) DeleteProperty(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("Failed to delete property", zap.Error(err), zap.String("property_id", id))
		}
		return repositoryError("delete property", err)
	}
	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, id); err != nil {
			uc.logger.Warn("Property cache eviction failed", zap.String("property_id", id), zap.Error(err))
		}
	}
	return nil
}
