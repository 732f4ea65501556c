package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// BookingRepository implements domain.BookingRepository using MongoDB.
type BookingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewBookingRepository binds the repository to a collection.
func NewBookingRepository(db *mongo.Database, collectionName string, advancedIndexing bool, log *logger.Logger) *BookingRepository {
	collection := db.Collection(collectionName)
	repoLogger := log.Named("BookingRepository")

	if advancedIndexing {
		indexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "checkIn", Value: 1}},
				Options: options.Index().SetName("user_booking_lookup"),
			},
			{
				Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "checkOut", Value: -1}},
				Options: options.Index().SetName("property_booking_history"),
			},
		}
		if err := ensureIndexes(collection, indexes); err != nil {
			repoLogger.Error("Failed to create indexes for bookings collection", zap.Error(err))
		} else {
			repoLogger.Info("Successfully ensured indexes for bookings collection")
		}
	}

	return &BookingRepository{collection: collection, logger: repoLogger}
}

// List returns bookings matching filter, newest first.
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	r.logger.Debug("Listing bookings from DB", zap.Any("filter", filter))

	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.PropertyID != "" {
		query["propertyId"] = filter.PropertyID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	findOptions := pageOptions(filter.Limit, filter.Offset).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to list bookings from DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode bookings from DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}

	bookings := make([]*domain.Booking, len(docs))
	for i, doc := range docs {
		bookings[i] = doc.toDomain()
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count bookings in DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}
	return bookings, total, nil
}

// FindActiveOverlapping returns the active bookings of propertyID whose stay
// touches [checkIn, checkOut].
func (r *BookingRepository) FindActiveOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*domain.Booking, error) {
	statuses := make(bson.A, 0, len(domain.ActiveBookingStatuses))
	for _, s := range domain.ActiveBookingStatuses {
		statuses = append(statuses, string(s))
	}
	query := bson.M{
		"propertyId": propertyID,
		"status":     bson.M{"$in": statuses},
		"checkIn":    bson.M{"$lte": checkOut.UTC()},
		"checkOut":   bson.M{"$gte": checkIn.UTC()},
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		r.logger.Error("Failed to find overlapping bookings", zap.Error(err), zap.String("property_id", propertyID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	bookings := make([]*domain.Booking, len(docs))
	for i, doc := range docs {
		bookings[i] = doc.toDomain()
	}
	return bookings, nil
}

// Create inserts a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.logger.Info("Creating booking in DB",
		zap.String("booking_id", booking.ID),
		zap.String("property_id", booking.PropertyID),
		zap.String("user_id", booking.UserID),
	)

	if _, err := r.collection.InsertOne(ctx, fromDomainBooking(booking)); err != nil {
		r.logger.Error("Failed to insert booking into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// UpdateStatus moves a booking to status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Failed to update booking status in DB", zap.Error(err), zap.String("booking_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("Booking status updated", zap.String("booking_id", id), zap.String("status", string(status)))
	return nil
}
