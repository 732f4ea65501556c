// Package availability decides whether a requested stay can coexist with a
// property's existing reservations.
package availability

import (
	"errors"
	"time"

	"github.com/MongoPete/airbnb-clone/internal/domain"
)

// ErrInvalidRange is returned when check-in is not strictly before check-out.
var ErrInvalidRange = errors.New("check-in must be before check-out")

// Decision is the verdict for one candidate stay.
type Decision struct {
	Available bool     `json:"available"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// Overlaps reports whether two stays touch or intersect. Both ends are
// inclusive, so a check-out on the same day as a check-in conflicts.
func Overlaps(existingIn, existingOut, candidateIn, candidateOut time.Time) bool {
	return !existingIn.After(candidateOut) && !existingOut.Before(candidateIn)
}

// CheckAvailability applies the overlap rule against existing bookings.
// Bookings of other properties and bookings that are no longer active are
// ignored. The input slice is not modified.
func CheckAvailability(propertyID string, checkIn, checkOut time.Time, existing []*domain.Booking) (Decision, error) {
	if !checkIn.Before(checkOut) {
		return Decision{}, ErrInvalidRange
	}

	var conflicts []string
	for _, b := range existing {
		if b == nil || b.PropertyID != propertyID || !b.Status.IsActive() {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			conflicts = append(conflicts, b.ID)
		}
	}

	return Decision{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// Err converts a negative decision into a *domain.ConflictError.
func (d Decision) Err(propertyID string) error {
	if d.Available {
		return nil
	}
	return &domain.ConflictError{PropertyID: propertyID, BookingIDs: d.Conflicts}
}
