package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

// The Unconfigured* adapters stand in for the store when no connection
// string is set. Every call fails with domain.ErrConfigurationUnavailable.

// UnconfiguredProperties is the property repository used without a store.
type UnconfiguredProperties struct{}

func (UnconfiguredProperties) Search(context.Context, domain.PropertyFilter) ([]*domain.Property, int64, error) {
	return nil, 0, domain.ErrConfigurationUnavailable
}

func (UnconfiguredProperties) GetByID(context.Context, string) (*domain.Property, error) {
	return nil, domain.ErrConfigurationUnavailable
}

func (UnconfiguredProperties) GetByIDs(context.Context, []string) (map[string]*domain.Property, error) {
	return nil, domain.ErrConfigurationUnavailable
}

func (UnconfiguredProperties) Create(context.Context, *domain.Property) error {
	return domain.ErrConfigurationUnavailable
}

func (UnconfiguredProperties) Delete(context.Context, string) error {
	return domain.ErrConfigurationUnavailable
}

// UnconfiguredBookings is the booking repository used without a store.
type UnconfiguredBookings struct{}

func (UnconfiguredBookings) List(context.Context, domain.BookingFilter) ([]*domain.Booking, int64, error) {
	return nil, 0, domain.ErrConfigurationUnavailable
}

func (UnconfiguredBookings) FindActiveOverlapping(context.Context, string, time.Time, time.Time) ([]*domain.Booking, error) {
	return nil, domain.ErrConfigurationUnavailable
}

func (UnconfiguredBookings) Create(context.Context, *domain.Booking) error {
	return domain.ErrConfigurationUnavailable
}

func (UnconfiguredBookings) UpdateStatus(context.Context, string, domain.BookingStatus) error {
	return domain.ErrConfigurationUnavailable
}

// UnconfiguredFavorites is the favorite repository used without a store.
type UnconfiguredFavorites struct{}

func (UnconfiguredFavorites) List(context.Context, domain.FavoriteFilter) ([]*domain.Favorite, int64, error) {
	return nil, 0, domain.ErrConfigurationUnavailable
}

func (UnconfiguredFavorites) Find(context.Context, string, string) (*domain.Favorite, error) {
	return nil, domain.ErrConfigurationUnavailable
}

func (UnconfiguredFavorites) Add(context.Context, *domain.Favorite) error {
	return domain.ErrConfigurationUnavailable
}

func (UnconfiguredFavorites) Remove(context.Context, string) error {
	return domain.ErrConfigurationUnavailable
}

// UnconfiguredSchemaStore installs no rules and counts no documents.
type UnconfiguredSchemaStore struct{}

func (UnconfiguredSchemaStore) ApplyValidation(context.Context, string, bson.M, validation.Level) (validation.InstallAction, error) {
	return validation.ActionFailed, domain.ErrConfigurationUnavailable
}

func (UnconfiguredSchemaStore) CountDocuments(context.Context, string) (int64, error) {
	return 0, domain.ErrConfigurationUnavailable
}

var (
	_ domain.PropertyRepository  = UnconfiguredProperties{}
	_ domain.BookingRepository   = UnconfiguredBookings{}
	_ domain.FavoriteRepository  = UnconfiguredFavorites{}
	_ validation.SchemaInstaller = UnconfiguredSchemaStore{}
	_ validation.DocumentCounter = UnconfiguredSchemaStore{}

	_ domain.PropertyRepository  = (*PropertyRepository)(nil)
	_ domain.BookingRepository   = (*BookingRepository)(nil)
	_ domain.FavoriteRepository  = (*FavoriteRepository)(nil)
	_ validation.SchemaInstaller = (*SchemaStore)(nil)
	_ validation.DocumentCounter = (*SchemaStore)(nil)
)
