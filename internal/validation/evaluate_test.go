package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MongoPete/airbnb-clone/internal/domain"
)

func validProperty() domain.Document {
	return domain.Document{
		"name":          "Cozy Loft Downtown",
		"property_type": "Loft",
		"room_type":     "Entire home/apt",
		"accommodates":  float64(4),
		"bedrooms":      float64(2),
		"bathrooms":     "1.5",
		"price":         "120.00",
		"amenities":     []any{"Wifi", "Kitchen"},
		"host": map[string]any{
			"host_id":           "h-1",
			"host_name":         "Sam",
			"host_is_superhost": true,
		},
		"address": map[string]any{
			"street":  "12 Market Street",
			"country": "Portugal",
			"location": map[string]any{
				"type":        "Point",
				"coordinates": []any{-8.61, 41.14},
			},
		},
	}
}

func validBooking() domain.Document {
	return domain.Document{
		"propertyId": "prop-1",
		"userId":     "user-1",
		"checkIn":    "2024-12-15",
		"checkOut":   "2024-12-20",
		"guests":     float64(2),
		"totalPrice": float64(750),
		"status":     "pending",
		"createdAt":  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEvaluate_ValidDocuments(t *testing.T) {
	result := Evaluate(PropertyRules("listingsAndReviews"), validProperty())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)

	result = Evaluate(BookingRules("bookings"), validBooking())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestEvaluate_PropertyMissingHost(t *testing.T) {
	doc := validProperty()
	delete(doc, "host")

	result := Evaluate(PropertyRules("listingsAndReviews"), doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Host information is required"}, result.Errors)
}

func TestEvaluate_BookingSameDayCheckout(t *testing.T) {
	doc := validBooking()
	doc["checkOut"] = doc["checkIn"]

	result := Evaluate(BookingRules("bookings"), doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Check-out date must be after check-in date"}, result.Errors)
}

func TestEvaluate_CollectsEveryViolationInOrder(t *testing.T) {
	doc := domain.Document{
		"propertyId": "",
		"checkIn":    "2024-12-20",
		"checkOut":   "2024-12-15",
		"guests":     float64(25),
		"totalPrice": float64(0),
		"status":     "archived",
	}

	result := Evaluate(BookingRules("bookings"), doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Property ID is required",
		"User ID is required",
		"Check-out date must be after check-in date",
		"Number of guests must be 1-20",
		"Total price must be a positive number",
		"Status must be: pending, confirmed, cancelled, or completed",
	}, result.Errors)
}

func TestEvaluate_EmptyPropertyReportsRequiredFields(t *testing.T) {
	result := Evaluate(PropertyRules("listingsAndReviews"), domain.Document{})
	assert.Equal(t, []string{
		"Property name must be 5-100 characters",
		"Property type must be from allowed list",
		"Room type must be from allowed list",
		"Must accommodate 1-20 guests",
		"Price is required and must be a valid decimal",
		"Host information is required",
		"Address with street and country is required",
	}, result.Errors)
}

func TestEvaluate_PropertyFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(domain.Document)
		wantErr string
	}{
		{"short name", func(d domain.Document) { d["name"] = "Loft" }, "Property name must be 5-100 characters"},
		{"unknown property type", func(d domain.Document) { d["property_type"] = "Castle" }, "Property type must be from allowed list"},
		{"unknown room type", func(d domain.Document) { d["room_type"] = "Sofa" }, "Room type must be from allowed list"},
		{"fractional accommodates", func(d domain.Document) { d["accommodates"] = 2.5 }, "Must accommodate 1-20 guests"},
		{"accommodates beyond int64", func(d domain.Document) { d["accommodates"] = 1e19 }, "Must accommodate 1-20 guests"},
		{"too many bedrooms", func(d domain.Document) { d["bedrooms"] = float64(11) }, "Bedrooms must be 0-10"},
		{"bathrooms not decimal", func(d domain.Document) { d["bathrooms"] = "one" }, "Bathrooms must be a valid decimal number"},
		{"price with three decimals", func(d domain.Document) { d["price"] = "10.999" }, "Price is required and must be a valid decimal"},
		{"empty amenity", func(d domain.Document) { d["amenities"] = []any{"Wifi", ""} }, "Amenities must be array of strings, max 50 items"},
		{"host name too short", func(d domain.Document) { d["host"].(map[string]any)["host_name"] = "S" }, "Host name must be 2-50 characters"},
		{"superhost not boolean", func(d domain.Document) { d["host"].(map[string]any)["host_is_superhost"] = "yes" }, "Superhost status must be boolean"},
		{"host not an object", func(d domain.Document) { d["host"] = "Sam" }, "Host information is required"},
		{"street too short", func(d domain.Document) { d["address"].(map[string]any)["street"] = "Rd" }, "Street address must be 5-200 characters"},
		{"missing country", func(d domain.Document) { delete(d["address"].(map[string]any), "country") }, "Country must be 2-100 characters"},
		{
			"location not a point",
			func(d domain.Document) {
				d["address"].(map[string]any)["location"].(map[string]any)["type"] = "Polygon"
			},
			"Location type must be 'Point'",
		},
		{
			"coordinates out of range",
			func(d domain.Document) {
				d["address"].(map[string]any)["location"].(map[string]any)["coordinates"] = []any{-190.0, 41.0}
			},
			"Coordinates must be [longitude, latitude] within valid range",
		},
		{
			"single coordinate",
			func(d domain.Document) {
				d["address"].(map[string]any)["location"].(map[string]any)["coordinates"] = []any{41.0}
			},
			"Coordinates must be [longitude, latitude] within valid range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validProperty()
			tt.mutate(doc)

			result := Evaluate(PropertyRules("listingsAndReviews"), doc)
			assert.False(t, result.IsValid)
			assert.Equal(t, []string{tt.wantErr}, result.Errors)
		})
	}
}

func TestEvaluate_OptionalPropertyFields(t *testing.T) {
	doc := validProperty()
	delete(doc, "bathrooms")
	delete(doc, "amenities")
	delete(doc["address"].(map[string]any), "location")
	doc["bedrooms"] = nil
	doc["price"] = map[string]any{"$numberDecimal": "99.5"}

	result := Evaluate(PropertyRules("listingsAndReviews"), doc)
	assert.True(t, result.IsValid, result.Errors)
}

func TestEvaluate_IsIdempotent(t *testing.T) {
	doc := validBooking()
	doc["guests"] = float64(0)
	set := BookingRules("bookings")

	first := Evaluate(set, doc)
	second := Evaluate(set, doc)
	require.False(t, first.IsValid)
	assert.Equal(t, first, second)
}

func TestEvaluate_DoesNotMutateDocument(t *testing.T) {
	doc := validBooking()
	before := len(doc)

	Evaluate(BookingRules("bookings"), doc)
	assert.Len(t, doc, before)
	assert.Equal(t, "2024-12-15", doc["checkIn"])
}
