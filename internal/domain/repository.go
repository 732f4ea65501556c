package domain

import (
	"context"
	"time"
)

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	Search(ctx context.Context, filter PropertyFilter) ([]*Property, int64, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Property, error)
	Create(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository defines persistence operations for reservations.
type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]*Booking, int64, error)
	// FindActiveOverlapping returns pending or confirmed bookings of the
	// property whose stay touches [checkIn, checkOut] inclusively.
	FindActiveOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*Booking, error)
	Create(ctx context.Context, booking *Booking) error
	UpdateStatus(ctx context.Context, id string, status BookingStatus) error
}

// FavoriteRepository defines persistence operations for saved listings.
type FavoriteRepository interface {
	List(ctx context.Context, filter FavoriteFilter) ([]*Favorite, int64, error)
	Find(ctx context.Context, userID, propertyID string) (*Favorite, error)
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, id string) error
}

// PropertyCache is a read-through cache for single listings.
type PropertyCache interface {
	Get(ctx context.Context, id string) (*Property, error)
	Set(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher announces domain changes to other services.
type EventPublisher interface {
	PublishPropertyCreated(ctx context.Context, property *Property) error
	PublishBookingCreated(ctx context.Context, booking *Booking) error
	PublishFavoriteToggled(ctx context.Context, favorite *Favorite, added bool) error
}

// BookingLocker serialises booking creation per property.
type BookingLocker interface {
	Acquire(ctx context.Context, propertyID string) (release func(context.Context) error, err error)
}
