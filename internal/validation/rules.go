// Package validation holds the declarative rule tables for property and
// booking documents. One table drives both the in-process validator and the
// $jsonSchema installed on the backing collections.
package validation

import (
	"github.com/MongoPete/airbnb-clone/internal/domain"
)

// Kind names a document kind with its own rule set.
type Kind string

const (
	KindProperty Kind = "property"
	KindBooking  Kind = "booking"
)

// ParseKind accepts the singular and plural forms used by the API.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "property", "properties":
		return KindProperty, true
	case "booking", "bookings":
		return KindBooking, true
	}
	return "", false
}

// FieldType is the expected shape of a field value.
type FieldType string

const (
	TypeString        FieldType = "string"
	TypeInt           FieldType = "int"
	TypeNumber        FieldType = "number"
	TypeDecimalString FieldType = "decimal"
	TypeDate          FieldType = "date"
	TypeBool          FieldType = "bool"
	TypeObject        FieldType = "object"
	TypeArray         FieldType = "array"
)

// Level controls which writes the store checks against the schema.
type Level string

const (
	// LevelModerate checks inserts and updates to documents that already comply.
	LevelModerate Level = "moderate"
	// LevelStrict checks every insert and update.
	LevelStrict Level = "strict"
)

// Rule is one entry of a rule table. A failing rule contributes exactly one
// message. Rules on a nested path are skipped when the parent is absent or
// not an object; the parent's own rule reports that.
type Rule struct {
	Field    string    `json:"field"`
	Message  string    `json:"message"`
	Required bool      `json:"required,omitempty"`
	Type     FieldType `json:"type,omitempty"`
	Nullable bool      `json:"nullable,omitempty"`

	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty"`

	Enum    []string `json:"enum,omitempty"`
	Pattern string   `json:"pattern,omitempty"`

	MinItems *int  `json:"minItems,omitempty"`
	MaxItems *int  `json:"maxItems,omitempty"`
	Items    *Rule `json:"items,omitempty"`

	// After names a sibling date field this field must be strictly later than.
	After string `json:"after,omitempty"`
}

// RuleSet is the ordered rule table for one document kind.
type RuleSet struct {
	Kind       Kind   `json:"kind"`
	Collection string `json:"collection"`
	Level      Level  `json:"validationLevel"`
	Rules      []Rule `json:"rules"`
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// PropertyRules returns the property rule table bound to collection.
func PropertyRules(collection string) *RuleSet {
	return &RuleSet{
		Kind:       KindProperty,
		Collection: collection,
		Level:      LevelModerate,
		Rules: []Rule{
			{
				Field: "name", Message: "Property name must be 5-100 characters",
				Required: true, Type: TypeString, MinLength: intPtr(5), MaxLength: intPtr(100),
			},
			{
				Field: "property_type", Message: "Property type must be from allowed list",
				Required: true, Type: TypeString, Enum: domain.PropertyTypes,
			},
			{
				Field: "room_type", Message: "Room type must be from allowed list",
				Required: true, Type: TypeString, Enum: domain.RoomTypes,
			},
			{
				Field: "accommodates", Message: "Must accommodate 1-20 guests",
				Required: true, Type: TypeInt, Minimum: floatPtr(1), Maximum: floatPtr(20),
			},
			{
				Field: "bedrooms", Message: "Bedrooms must be 0-10",
				Type: TypeInt, Nullable: true, Minimum: floatPtr(0), Maximum: floatPtr(10),
			},
			{
				Field: "bathrooms", Message: "Bathrooms must be a valid decimal number",
				Type: TypeDecimalString, Pattern: `^[0-9]+(\.[0-9]+)?$`,
			},
			{
				Field: "price", Message: "Price is required and must be a valid decimal",
				Required: true, Type: TypeDecimalString, Pattern: `^[0-9]+(\.[0-9]{1,2})?$`,
			},
			{
				Field: "amenities", Message: "Amenities must be array of strings, max 50 items",
				Type: TypeArray, MaxItems: intPtr(50),
				Items: &Rule{Type: TypeString, MinLength: intPtr(1)},
			},
			{
				Field: "host", Message: "Host information is required",
				Required: true, Type: TypeObject,
			},
			{
				Field: "host.host_id", Message: "Host ID is required",
				Required: true, Type: TypeString, MinLength: intPtr(1),
			},
			{
				Field: "host.host_name", Message: "Host name must be 2-50 characters",
				Required: true, Type: TypeString, MinLength: intPtr(2), MaxLength: intPtr(50),
			},
			{
				Field: "host.host_is_superhost", Message: "Superhost status must be boolean",
				Type: TypeBool,
			},
			{
				Field: "address", Message: "Address with street and country is required",
				Required: true, Type: TypeObject,
			},
			{
				Field: "address.street", Message: "Street address must be 5-200 characters",
				Required: true, Type: TypeString, MinLength: intPtr(5), MaxLength: intPtr(200),
			},
			{
				Field: "address.country", Message: "Country must be 2-100 characters",
				Required: true, Type: TypeString, MinLength: intPtr(2), MaxLength: intPtr(100),
			},
			{
				Field: "address.location", Message: "Location must be a GeoJSON object",
				Type: TypeObject,
			},
			{
				Field: "address.location.type", Message: "Location type must be 'Point'",
				Required: true, Type: TypeString, Enum: []string{"Point"},
			},
			{
				Field: "address.location.coordinates", Message: "Coordinates must be [longitude, latitude] within valid range",
				Required: true, Type: TypeArray, MinItems: intPtr(2), MaxItems: intPtr(2),
				Items: &Rule{Type: TypeNumber, Minimum: floatPtr(-180), Maximum: floatPtr(180)},
			},
		},
	}
}

// BookingRules returns the booking rule table bound to collection.
func BookingRules(collection string) *RuleSet {
	statuses := make([]string, 0, len(domain.BookingStatuses))
	for _, s := range domain.BookingStatuses {
		statuses = append(statuses, string(s))
	}

	return &RuleSet{
		Kind:       KindBooking,
		Collection: collection,
		Level:      LevelStrict,
		Rules: []Rule{
			{
				Field: "propertyId", Message: "Property ID is required",
				Required: true, Type: TypeString, MinLength: intPtr(1),
			},
			{
				Field: "userId", Message: "User ID is required",
				Required: true, Type: TypeString, MinLength: intPtr(1),
			},
			{
				Field: "checkIn", Message: "Check-in date is required",
				Required: true, Type: TypeDate,
			},
			{
				Field: "checkOut", Message: "Check-out date is required",
				Required: true, Type: TypeDate,
			},
			{
				Field: "checkOut", Message: "Check-out date must be after check-in date",
				Type: TypeDate, After: "checkIn",
			},
			{
				Field: "guests", Message: "Number of guests must be 1-20",
				Required: true, Type: TypeInt, Minimum: floatPtr(1), Maximum: floatPtr(20),
			},
			{
				Field: "totalPrice", Message: "Total price must be a positive number",
				Required: true, Type: TypeNumber, Minimum: floatPtr(0), ExclusiveMinimum: true,
			},
			{
				Field: "status", Message: "Status must be: pending, confirmed, cancelled, or completed",
				Required: true, Type: TypeString, Enum: statuses,
			},
			{
				Field: "createdAt", Message: "Creation date must be a valid date",
				Type: TypeDate,
			},
		},
	}
}
