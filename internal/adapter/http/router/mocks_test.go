package router

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/usecase"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

type MockPropertyService struct{ mock.Mock }

func (m *MockPropertyService) SearchProperties(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Property), args.Get(1).(int64), args.Error(2)
}
func (m *MockPropertyService) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) CreateProperty(ctx context.Context, doc domain.Document) (*domain.Property, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) DeleteProperty(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookingService) CreateBooking(ctx context.Context, request domain.Document) (*domain.Booking, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockFavoriteService struct{ mock.Mock }

func (m *MockFavoriteService) ListFavorites(ctx context.Context, filter domain.FavoriteFilter) ([]*domain.Favorite, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Favorite), args.Get(1).(int64), args.Error(2)
}
func (m *MockFavoriteService) ToggleFavorite(ctx context.Context, userID, propertyID string) (*domain.Favorite, bool, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Favorite), args.Bool(1), args.Error(2)
}

type MockValidationService struct{ mock.Mock }

func (m *MockValidationService) Setup(ctx context.Context) ([]validation.InstallResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]validation.InstallResult), args.Error(1)
}
func (m *MockValidationService) Report(ctx context.Context) (*usecase.ValidationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ValidationReport), args.Error(1)
}
func (m *MockValidationService) Rules(kind validation.Kind) (*validation.RuleSet, bson.M, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*validation.RuleSet), args.Get(1).(bson.M), args.Error(2)
}
