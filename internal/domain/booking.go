package domain

import "time"

// BookingStatus is the lifecycle state of a reservation.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingStatuses lists every status in declaration order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

// ActiveBookingStatuses are the statuses that block other reservations.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// IsValid checks if the status is one of the defined constants.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether a booking in this status holds its dates.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking is one reservation of a property by a user.
type Booking struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"propertyId"`
	UserID     string        `json:"userId"`
	CheckIn    time.Time     `json:"checkIn"`
	CheckOut   time.Time     `json:"checkOut"`
	Guests     int           `json:"guests"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Nights is the number of whole nights between check-in and check-out.
func (b *Booking) Nights() int {
	if !b.CheckOut.After(b.CheckIn) {
		return 0
	}
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Document renders the booking as the attribute bag the validator inspects.
func (b *Booking) Document() Document {
	return Document{
		"id":         b.ID,
		"propertyId": b.PropertyID,
		"userId":     b.UserID,
		"checkIn":    b.CheckIn,
		"checkOut":   b.CheckOut,
		"guests":     b.Guests,
		"totalPrice": b.TotalPrice,
		"status":     string(b.Status),
		"createdAt":  b.CreatedAt,
		"updatedAt":  b.UpdatedAt,
	}
}

// BookingFromDocument builds a booking from an attribute bag. Values of the
// wrong shape are left at their zero value; validation reports them.
func BookingFromDocument(doc Document) *Booking {
	b := &Booking{
		ID:         stringField(doc, "id"),
		PropertyID: stringField(doc, "propertyId"),
		UserID:     stringField(doc, "userId"),
		Status:     BookingStatus(stringField(doc, "status")),
	}
	b.CheckIn, _ = timeField(doc, "checkIn")
	b.CheckOut, _ = timeField(doc, "checkOut")
	b.CreatedAt, _ = timeField(doc, "createdAt")
	b.UpdatedAt, _ = timeField(doc, "updatedAt")
	if v, ok := doc.Lookup("guests"); ok {
		if n, ok := AsInt(v); ok {
			b.Guests = int(n)
		}
	}
	if v, ok := doc.Lookup("totalPrice"); ok {
		b.TotalPrice, _ = AsNumber(v)
	}
	return b
}

// BookingFilter narrows a bookings listing.
type BookingFilter struct {
	UserID     string
	PropertyID string
	Status     BookingStatus
	Limit      int
	Offset     int
}
