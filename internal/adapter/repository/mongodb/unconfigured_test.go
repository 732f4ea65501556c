package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

func TestUnconfiguredAdaptersReportMissingStore(t *testing.T) {
	ctx := context.Background()

	_, _, err := UnconfiguredProperties{}.Search(ctx, domain.PropertyFilter{})
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)

	_, err = UnconfiguredBookings{}.FindActiveOverlapping(ctx, "p", time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)

	assert.ErrorIs(t, UnconfiguredFavorites{}.Add(ctx, &domain.Favorite{}), domain.ErrConfigurationUnavailable)

	action, err := UnconfiguredSchemaStore{}.ApplyValidation(ctx, "bookings", nil, validation.LevelStrict)
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
	assert.Equal(t, validation.ActionFailed, action)
}

func TestSearchQuery(t *testing.T) {
	minPrice := 50.0
	query := searchQuery(domain.PropertyFilter{Search: "a.b", PropertyType: "House", MinPrice: &minPrice})

	assert.Equal(t, "House", query["property_type"])
	assert.Equal(t, map[string]any{"$gte": 50.0}, map[string]any(query["price"].(bson.M)))
	assert.Len(t, query["$or"], 4)
	assert.NotContains(t, query, "$and")
}
