package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MongoPete/airbnb-clone/internal/availability"
	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/platform/metrics"
)

func bookingRequest() domain.Document {
	return domain.Document{
		"propertyId": "prop-1",
		"checkIn":    "2024-12-15",
		"checkOut":   "2024-12-20",
		"guests":     float64(2),
		"totalPrice": float64(750),
	}
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

type bookingFixture struct {
	repo      *MockBookingRepository
	locker    *MockBookingLocker
	publisher *MockEventPublisher
	metrics   *metrics.MetricsManager
}

func newBookingUsecase(validationEnabled bool, enabled ...features.Feature) (*BookingUsecase, *bookingFixture) {
	fx := &bookingFixture{
		repo:      new(MockBookingRepository),
		locker:    new(MockBookingLocker),
		publisher: new(MockEventPublisher),
		metrics:   metrics.NewMetricsManager("test"),
	}
	uc := NewBookingUsecase(fx.repo, newValidator(validationEnabled), fx.locker, fx.publisher,
		flags(enabled...), fx.metrics, "test-user-123", logger.NewNop())
	return uc, fx
}

func TestCreateBooking_Available(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	ctx := context.Background()

	fx.repo.On("FindActiveOverlapping", ctx, "prop-1", date("2024-12-15"), date("2024-12-20")).
		Return([]*domain.Booking{}, nil)
	fx.repo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	fx.publisher.On("PublishBookingCreated", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	booking, err := uc.CreateBooking(ctx, bookingRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, "test-user-123", booking.UserID)
	assert.Equal(t, 2, booking.Guests)
	assert.Equal(t, 5, booking.Nights())
	assert.False(t, booking.CreatedAt.IsZero())

	fx.repo.AssertExpectations(t)
	fx.publisher.AssertExpectations(t)
	fx.locker.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything)
}

func TestCreateBooking_ClientStatusIsIgnored(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	ctx := context.Background()

	fx.repo.On("FindActiveOverlapping", ctx, "prop-1", mock.Anything, mock.Anything).Return(nil, nil)
	fx.repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingStatusPending && b.UserID == "user-9"
	})).Return(nil)
	fx.publisher.On("PublishBookingCreated", ctx, mock.Anything).Return(nil)

	req := bookingRequest()
	req["status"] = "confirmed"
	req["userId"] = "user-9"

	_, err := uc.CreateBooking(ctx, req)
	require.NoError(t, err)
	fx.repo.AssertExpectations(t)
}

func TestCreateBooking_Conflict(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	ctx := context.Background()

	existing := &domain.Booking{
		ID:         "b-1",
		PropertyID: "prop-1",
		CheckIn:    date("2024-12-18"),
		CheckOut:   date("2024-12-22"),
		Status:     domain.BookingStatusConfirmed,
	}
	fx.repo.On("FindActiveOverlapping", ctx, "prop-1", mock.Anything, mock.Anything).
		Return([]*domain.Booking{existing}, nil)

	_, err := uc.CreateBooking(ctx, bookingRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBookingConflict)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"b-1"}, conflict.BookingIDs)

	fx.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_ValidationFailure(t *testing.T) {
	uc, fx := newBookingUsecase(true)

	req := bookingRequest()
	req["checkOut"] = req["checkIn"]
	req["guests"] = float64(0)

	_, err := uc.CreateBooking(context.Background(), req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"Check-out date must be after check-in date",
		"Number of guests must be 1-20",
	}, vErr.Errors)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fx.repo.AssertNotCalled(t, "FindActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_ValidationDisabledStillChecksRange(t *testing.T) {
	uc, fx := newBookingUsecase(false)

	req := bookingRequest()
	req["checkOut"] = req["checkIn"]

	_, err := uc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrInvalidRange)
	fx.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_StoreNotConfigured(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	fx.repo.On("FindActiveOverlapping", mock.Anything, "prop-1", mock.Anything, mock.Anything).
		Return(nil, domain.ErrConfigurationUnavailable)

	_, err := uc.CreateBooking(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
}

func TestCreateBooking_PublishFailureIsNotFatal(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	fx.repo.On("FindActiveOverlapping", mock.Anything, "prop-1", mock.Anything, mock.Anything).Return(nil, nil)
	fx.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	fx.publisher.On("PublishBookingCreated", mock.Anything, mock.Anything).Return(errors.New("nats down"))

	booking, err := uc.CreateBooking(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestCreateBooking_LocksWhenTransactionsEnabled(t *testing.T) {
	uc, fx := newBookingUsecase(true, features.Transactions)

	released := false
	release := func(context.Context) error {
		released = true
		return nil
	}
	fx.locker.On("Acquire", mock.Anything, "prop-1").Return(release, nil)
	fx.repo.On("FindActiveOverlapping", mock.Anything, "prop-1", mock.Anything, mock.Anything).Return(nil, nil)
	fx.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	fx.publisher.On("PublishBookingCreated", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.CreateBooking(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.True(t, released)
	fx.locker.AssertExpectations(t)
}

func TestCreateBooking_LockHeld(t *testing.T) {
	uc, fx := newBookingUsecase(true, features.Transactions)
	fx.locker.On("Acquire", mock.Anything, "prop-1").Return(nil, errors.New("held"))

	_, err := uc.CreateBooking(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrBookingInProgress)
	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	fx.repo.AssertNotCalled(t, "FindActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListBookings_DefaultsPageSize(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	fx.repo.On("List", mock.Anything, domain.BookingFilter{UserID: "u-1", Limit: 20}).
		Return([]*domain.Booking{{ID: "b-1"}}, int64(1), nil)

	bookings, total, err := uc.ListBookings(context.Background(), domain.BookingFilter{UserID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, int64(1), total)
}

func TestListBookings_RepositoryError(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	fx.repo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("socket closed"))

	_, _, err := uc.ListBookings(context.Background(), domain.BookingFilter{})
	assert.ErrorIs(t, err, domain.ErrRepository)
}

func TestUpdateBookingStatus(t *testing.T) {
	uc, fx := newBookingUsecase(true)
	fx.repo.On("UpdateStatus", mock.Anything, "b-1", domain.BookingStatusConfirmed).Return(nil)
	fx.repo.On("UpdateStatus", mock.Anything, "missing", domain.BookingStatusCancelled).Return(domain.ErrNotFound)

	require.NoError(t, uc.UpdateBookingStatus(context.Background(), "b-1", domain.BookingStatusConfirmed))
	assert.ErrorIs(t, uc.UpdateBookingStatus(context.Background(), "missing", domain.BookingStatusCancelled), domain.ErrNotFound)
	assert.ErrorIs(t, uc.UpdateBookingStatus(context.Background(), "b-1", "archived"), domain.ErrInvalidInput)
}
