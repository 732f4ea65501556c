package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrBookingConflict indicates that the requested stay overlaps an active booking.
	ErrBookingConflict = errors.New("property is not available for selected dates")
	// ErrDuplicateFavorite indicates that the user already saved this property.
	ErrDuplicateFavorite = errors.New("favorite already exists")
	// ErrConfigurationUnavailable indicates the document store is not configured.
	ErrConfigurationUnavailable = errors.New("document store is not configured")
	// ErrFeatureDisabled indicates the requested capability is switched off.
	ErrFeatureDisabled = errors.New("feature is not enabled")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
)

// ValidationError carries every rule violation found in a rejected document.
type ValidationError struct {
	Kind   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Kind, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ConflictError names the active bookings that block a requested stay.
type ConflictError struct {
	PropertyID string
	BookingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: property %s conflicts with bookings %s",
		ErrBookingConflict.Error(), e.PropertyID, strings.Join(e.BookingIDs, ","))
}

func (e *ConflictError) Unwrap() error { return ErrBookingConflict }
