package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/availability"
	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/platform/metrics"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

// ErrBookingInProgress is returned when another booking for the same
// property is being created at the same moment.
var ErrBookingInProgress = fmt.Errorf("%w: another booking for this property is in progress", domain.ErrBookingConflict)

// BookingUsecase implements reservation listing and creation.
type BookingUsecase struct {
	repo          domain.BookingRepository
	validator     DocumentValidator
	locker        domain.BookingLocker
	publisher     domain.EventPublisher
	flags         FeatureFlags
	metrics       *metrics.MetricsManager
	defaultUserID string
	logger        *logger.Logger
}

// NewBookingUsecase creates a BookingUsecase. locker is only consulted
// while the transactions feature is enabled and may be nil.
func NewBookingUsecase(
	repo domain.BookingRepository,
	validator DocumentValidator,
	locker domain.BookingLocker,
	publisher domain.EventPublisher,
	flags FeatureFlags,
	metricsManager *metrics.MetricsManager,
	defaultUserID string,
	log *logger.Logger,
) *BookingUsecase {
	return &BookingUsecase{
		repo:          repo,
		validator:     validator,
		locker:        locker,
		publisher:     publisher,
		flags:         flags,
		metrics:       metricsManager,
		defaultUserID: defaultUserID,
		logger:        log.Named("BookingUsecase"),
	}
}

// ListBookings returns bookings matching filter, newest first.
func (uc *BookingUsecase) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	filter.Limit = pageLimit(filter.Limit)
	bookings, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list bookings", zap.Error(err))
		return nil, 0, repositoryError("list bookings", err)
	}
	return bookings, total, nil
}

// newBookingDocument overlays the server-owned fields on a client request.
// Any client supplied status is replaced: new bookings always start pending.
func (uc *BookingUsecase) newBookingDocument(doc domain.Document, now time.Time) domain.Document {
	doc = copyDocument(doc)
	doc.Set("id", uuid.NewString())
	doc.Set("status", string(domain.BookingStatusPending))
	doc.Set("createdAt", now)
	doc.Set("updatedAt", now)

	if userID, _ := doc["userId"].(string); userID == "" {
		doc.Set("userId", uc.defaultUserID)
	}
	for _, key := range []string{"checkIn", "checkOut"} {
		if t, ok := domain.ParseInstant(doc[key]); ok {
			doc.Set(key, t)
		}
	}
	return doc
}

// CreateBooking validates the request, checks the property's calendar and
// stores the booking in pending status.
//
// The calendar read and the insert are not atomic. With the transactions
// feature enabled and a locker configured, concurrent requests for the same
// property are serialised; otherwise two overlapping requests can both pass.
func (uc *BookingUsecase) CreateBooking(ctx context.Context, request domain.Document) (*domain.Booking, error) {
	doc := uc.newBookingDocument(request, time.Now().UTC())

	result, err := uc.validator.Validate(validation.KindBooking, doc)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		uc.metrics.ValidationRejected(string(validation.KindBooking))
		uc.logger.Info("Booking rejected by validation", zap.Strings("errors", result.Errors))
		return nil, &domain.ValidationError{Kind: string(validation.KindBooking), Errors: result.Errors}
	}

	booking := domain.BookingFromDocument(doc)
	if !booking.CheckIn.Before(booking.CheckOut) {
		return nil, availability.ErrInvalidRange
	}

	if uc.locker != nil && uc.flags.IsEnabled(features.Transactions) {
		release, err := uc.locker.Acquire(ctx, booking.PropertyID)
		if err != nil {
			uc.logger.Warn("Could not acquire booking lock", zap.String("property_id", booking.PropertyID), zap.Error(err))
			return nil, ErrBookingInProgress
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("Failed to release booking lock", zap.String("property_id", booking.PropertyID), zap.Error(err))
			}
		}()
	}

	existing, err := uc.repo.FindActiveOverlapping(ctx, booking.PropertyID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		uc.logger.Error("Failed to load existing bookings", zap.Error(err), zap.String("property_id", booking.PropertyID))
		return nil, repositoryError("find bookings", err)
	}

	decision, err := availability.CheckAvailability(booking.PropertyID, booking.CheckIn, booking.CheckOut, existing)
	if err != nil {
		return nil, err
	}
	if !decision.Available {
		uc.metrics.BookingConflict()
		uc.logger.Info("Booking conflicts with existing reservations",
			zap.String("property_id", booking.PropertyID),
			zap.Strings("conflicts", decision.Conflicts),
		)
		return nil, decision.Err(booking.PropertyID)
	}

	if err := uc.repo.Create(ctx, booking); err != nil {
		uc.logger.Error("Failed to save booking", zap.Error(err))
		return nil, repositoryError("create booking", err)
	}
	uc.metrics.BookingCreated()

	if err := uc.publisher.PublishBookingCreated(ctx, booking); err != nil {
		uc.logger.Warn("Failed to publish booking created event", zap.Error(err), zap.String("booking_id", booking.ID))
	}

	uc.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("property_id", booking.PropertyID),
		zap.Int("nights", booking.Nights()),
	)
	return booking, nil
}

// UpdateBookingStatus moves a booking to a new lifecycle state.
func (uc *BookingUsecase) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown booking status %q", domain.ErrInvalidInput, status)
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", id))
		}
		return repositoryError("update booking status", err)
	}
	return nil
}
