// Package usecase holds the application services behind the HTTP API.
package usecase

import (
	"errors"
	"fmt"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

const defaultPageSize = 20

// FeatureFlags is the read-only flag accessor.
type FeatureFlags interface {
	IsEnabled(feature features.Feature) bool
}

// DocumentValidator checks a document against the rules of its kind.
type DocumentValidator interface {
	Validate(kind validation.Kind, doc domain.Document) (validation.Result, error)
}

// repositoryError keeps sentinel errors callers map to responses and wraps
// everything else as domain.ErrRepository.
func repositoryError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrConfigurationUnavailable),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateFavorite):
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrRepository, op, err)
}

func pageLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}

func copyDocument(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc)+4)
	for k, v := range doc {
		out[k] = v
	}
	return out
}
