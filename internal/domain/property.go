package domain

import "time"

// PropertyTypes are the accepted values of property_type.
var PropertyTypes = []string{
	"Apartment", "House", "Condominium", "Loft", "Villa",
	"Townhouse", "Cabin", "Boat", "Other",
}

// RoomTypes are the accepted values of room_type.
var RoomTypes = []string{"Entire home/apt", "Private room", "Shared room", "Hotel room"}

// Property is a rentable listing. Decimal amounts are kept in their textual
// form so no precision is lost between the API and storage.
type Property struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Summary      string    `json:"summary,omitempty"`
	Description  string    `json:"description,omitempty"`
	PropertyType string    `json:"property_type,omitempty"`
	RoomType     string    `json:"room_type,omitempty"`
	Accommodates int       `json:"accommodates"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Beds         *int      `json:"beds,omitempty"`
	Bathrooms    string    `json:"bathrooms,omitempty"`
	Price        string    `json:"price"`
	Amenities    []string  `json:"amenities,omitempty"`
	Images       Images    `json:"images"`
	Host         Host      `json:"host"`
	Address      Address   `json:"address"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Images holds listing picture URLs.
type Images struct {
	PictureURL string `json:"picture_url,omitempty"`
}

// Host describes the owner of a listing.
type Host struct {
	ID           string `json:"host_id"`
	Name         string `json:"host_name"`
	IsSuperhost  bool   `json:"host_is_superhost"`
	PictureURL   string `json:"host_picture_url,omitempty"`
	Neighborhood string `json:"host_neighbourhood,omitempty"`
}

// Address locates a listing.
type Address struct {
	Street   string    `json:"street"`
	Suburb   string    `json:"suburb,omitempty"`
	Market   string    `json:"market,omitempty"`
	Country  string    `json:"country"`
	Location *GeoPoint `json:"location,omitempty"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// PropertyFromDocument builds a property from an attribute bag that has
// already passed validation.
func PropertyFromDocument(doc Document) *Property {
	p := &Property{
		ID:           stringField(doc, "_id"),
		Name:         stringField(doc, "name"),
		Summary:      stringField(doc, "summary"),
		Description:  stringField(doc, "description"),
		PropertyType: stringField(doc, "property_type"),
		RoomType:     stringField(doc, "room_type"),
		Images:       Images{PictureURL: stringField(doc, "images.picture_url")},
		Host: Host{
			ID:           stringField(doc, "host.host_id"),
			Name:         stringField(doc, "host.host_name"),
			PictureURL:   stringField(doc, "host.host_picture_url"),
			Neighborhood: stringField(doc, "host.host_neighbourhood"),
		},
		Address: Address{
			Street:  stringField(doc, "address.street"),
			Suburb:  stringField(doc, "address.suburb"),
			Market:  stringField(doc, "address.market"),
			Country: stringField(doc, "address.country"),
		},
	}
	if v, ok := doc.Lookup("accommodates"); ok {
		if n, ok := AsInt(v); ok {
			p.Accommodates = int(n)
		}
	}
	p.Bedrooms = optionalInt(doc, "bedrooms")
	p.Beds = optionalInt(doc, "beds")
	if v, ok := doc.Lookup("bathrooms"); ok {
		p.Bathrooms, _ = AsDecimalString(v)
	}
	if v, ok := doc.Lookup("price"); ok {
		p.Price, _ = AsDecimalString(v)
	}
	if v, ok := doc.Lookup("amenities"); ok {
		p.Amenities, _ = AsStringSlice(v)
	}
	if v, ok := doc.Lookup("host.host_is_superhost"); ok {
		p.Host.IsSuperhost, _ = v.(bool)
	}
	if v, ok := doc.Lookup("address.location.coordinates"); ok {
		if items, ok := AsSlice(v); ok {
			coords := make([]float64, 0, len(items))
			for _, item := range items {
				if f, ok := AsNumber(item); ok {
					coords = append(coords, f)
				}
			}
			p.Address.Location = &GeoPoint{
				Type:        stringField(doc, "address.location.type"),
				Coordinates: coords,
			}
		}
	}
	p.CreatedAt, _ = timeField(doc, "created_at")
	p.UpdatedAt, _ = timeField(doc, "updated_at")
	return p
}

func optionalInt(doc Document, path string) *int {
	v, ok := doc.Lookup(path)
	if !ok || v == nil {
		return nil
	}
	n, ok := AsInt(v)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

// PropertyFilter narrows a property search.
type PropertyFilter struct {
	Search       string
	Location     string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Limit        int
	Offset       int
}
