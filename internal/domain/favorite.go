package domain

import "time"

// Favorite marks a property saved by a user.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`

	// Property is attached when favorites are listed for a single user.
	Property *Property `json:"property,omitempty"`
}

// FavoriteFilter narrows a favorites listing.
type FavoriteFilter struct {
	UserID     string
	PropertyID string
	Limit      int
	Offset     int
}
