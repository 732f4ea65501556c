package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MongoPete/airbnb-clone/internal/domain"
)

type propertyDocument struct {
	ID           string                `bson:"_id"`
	Name         string                `bson:"name"`
	Summary      string                `bson:"summary,omitempty"`
	Description  string                `bson:"description,omitempty"`
	PropertyType string                `bson:"property_type,omitempty"`
	RoomType     string                `bson:"room_type,omitempty"`
	Accommodates int32                 `bson:"accommodates"`
	Bedrooms     *int32                `bson:"bedrooms,omitempty"`
	Beds         *int32                `bson:"beds,omitempty"`
	Bathrooms    *primitive.Decimal128 `bson:"bathrooms,omitempty"`
	Price        primitive.Decimal128  `bson:"price"`
	Amenities    []string              `bson:"amenities,omitempty"`
	Images       imagesDocument        `bson:"images"`
	Host         hostDocument          `bson:"host"`
	Address      addressDocument       `bson:"address"`
	CreatedAt    time.Time             `bson:"created_at,omitempty"`
	UpdatedAt    time.Time             `bson:"updated_at,omitempty"`
}

type imagesDocument struct {
	PictureURL string `bson:"picture_url,omitempty"`
}

type hostDocument struct {
	ID           string `bson:"host_id"`
	Name         string `bson:"host_name"`
	IsSuperhost  bool   `bson:"host_is_superhost"`
	PictureURL   string `bson:"host_picture_url,omitempty"`
	Neighborhood string `bson:"host_neighbourhood,omitempty"`
}

type addressDocument struct {
	Street   string            `bson:"street"`
	Suburb   string            `bson:"suburb,omitempty"`
	Market   string            `bson:"market,omitempty"`
	Country  string            `bson:"country"`
	Location *geoPointDocument `bson:"location,omitempty"`
}

type geoPointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func decimalString(d *primitive.Decimal128) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func fromDomainProperty(p *domain.Property) (*propertyDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	doc := &propertyDocument{
		ID:           p.ID,
		Name:         p.Name,
		Summary:      p.Summary,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		RoomType:     p.RoomType,
		Accommodates: int32(p.Accommodates),
		Bedrooms:     int32Ptr(p.Bedrooms),
		Beds:         int32Ptr(p.Beds),
		Price:        price,
		Amenities:    p.Amenities,
		Images:       imagesDocument{PictureURL: p.Images.PictureURL},
		Host: hostDocument{
			ID:           p.Host.ID,
			Name:         p.Host.Name,
			IsSuperhost:  p.Host.IsSuperhost,
			PictureURL:   p.Host.PictureURL,
			Neighborhood: p.Host.Neighborhood,
		},
		Address: addressDocument{
			Street:  p.Address.Street,
			Suburb:  p.Address.Suburb,
			Market:  p.Address.Market,
			Country: p.Address.Country,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Bathrooms != "" {
		bathrooms, err := primitive.ParseDecimal128(p.Bathrooms)
		if err != nil {
			return nil, err
		}
		doc.Bathrooms = &bathrooms
	}
	if p.Address.Location != nil {
		doc.Address.Location = &geoPointDocument{
			Type:        p.Address.Location.Type,
			Coordinates: p.Address.Location.Coordinates,
		}
	}
	return doc, nil
}

func (d *propertyDocument) toDomain() *domain.Property {
	p := &domain.Property{
		ID:           d.ID,
		Name:         d.Name,
		Summary:      d.Summary,
		Description:  d.Description,
		PropertyType: d.PropertyType,
		RoomType:     d.RoomType,
		Accommodates: int(d.Accommodates),
		Bedrooms:     intPtr(d.Bedrooms),
		Beds:         intPtr(d.Beds),
		Bathrooms:    decimalString(d.Bathrooms),
		Price:        d.Price.String(),
		Amenities:    d.Amenities,
		Images:       domain.Images{PictureURL: d.Images.PictureURL},
		Host: domain.Host{
			ID:           d.Host.ID,
			Name:         d.Host.Name,
			IsSuperhost:  d.Host.IsSuperhost,
			PictureURL:   d.Host.PictureURL,
			Neighborhood: d.Host.Neighborhood,
		},
		Address: domain.Address{
			Street:  d.Address.Street,
			Suburb:  d.Address.Suburb,
			Market:  d.Address.Market,
			Country: d.Address.Country,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Address.Location != nil {
		p.Address.Location = &domain.GeoPoint{
			Type:        d.Address.Location.Type,
			Coordinates: d.Address.Location.Coordinates,
		}
	}
	return p
}

type bookingDocument struct {
	ID         string    `bson:"_id"`
	PropertyID string    `bson:"propertyId"`
	UserID     string    `bson:"userId"`
	CheckIn    time.Time `bson:"checkIn"`
	CheckOut   time.Time `bson:"checkOut"`
	Guests     int32     `bson:"guests"`
	TotalPrice float64   `bson:"totalPrice"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func fromDomainBooking(b *domain.Booking) *bookingDocument {
	return &bookingDocument{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn.UTC(),
		CheckOut:   b.CheckOut.UTC(),
		Guests:     int32(b.Guests),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC(),
		UpdatedAt:  b.UpdatedAt.UTC(),
	}
}

func (d *bookingDocument) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		UserID:     d.UserID,
		CheckIn:    d.CheckIn,
		CheckOut:   d.CheckOut,
		Guests:     int(d.Guests),
		TotalPrice: d.TotalPrice,
		Status:     domain.BookingStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type favoriteDocument struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"userId"`
	PropertyID string    `bson:"propertyId"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func fromDomainFavorite(f *domain.Favorite) *favoriteDocument {
	return &favoriteDocument{
		ID:         f.ID,
		UserID:     f.UserID,
		PropertyID: f.PropertyID,
		CreatedAt:  f.CreatedAt.UTC(),
	}
}

func (d *favoriteDocument) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:         d.ID,
		UserID:     d.UserID,
		PropertyID: d.PropertyID,
		CreatedAt:  d.CreatedAt,
	}
}
