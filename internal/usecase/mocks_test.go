package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

type MockPropertyRepository struct{ mock.Mock }

func (m *MockPropertyRepository) Search(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Property), args.Get(1).(int64), args.Error(2)
}
func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Property, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookingRepository) FindActiveOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}
func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) List(ctx context.Context, filter domain.FavoriteFilter) ([]*domain.Favorite, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Favorite), args.Get(1).(int64), args.Error(2)
}
func (m *MockFavoriteRepository) Find(ctx context.Context, userID, propertyID string) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}
func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyCache struct{ mock.Mock }

func (m *MockPropertyCache) Get(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyCache) Set(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishPropertyCreated(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishFavoriteToggled(ctx context.Context, favorite *domain.Favorite, added bool) error {
	args := m.Called(ctx, favorite, added)
	return args.Error(0)
}

type MockBookingLocker struct{ mock.Mock }

func (m *MockBookingLocker) Acquire(ctx context.Context, propertyID string) (func(context.Context) error, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

func flags(enabled ...features.Feature) *features.Flags {
	values := map[features.Feature]bool{}
	for _, f := range enabled {
		values[f] = true
	}
	return features.New(values)
}

func newValidator(enabled bool) *validation.Validator {
	f := features.New(map[features.Feature]bool{features.SchemaValidation: enabled})
	return validation.NewValidator(f, nil, nil, logger.NewNop(),
		validation.PropertyRules("listingsAndReviews"), validation.BookingRules("bookings"))
}
