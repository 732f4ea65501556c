package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// FavoriteRepository implements domain.FavoriteRepository using MongoDB.
type FavoriteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewFavoriteRepository binds the repository to a collection and ensures a
// user may save a property only once.
func NewFavoriteRepository(db *mongo.Database, collectionName string, log *logger.Logger) *FavoriteRepository {
	collection := db.Collection(collectionName)
	repoLogger := log.Named("FavoriteRepository")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "propertyId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_property_unique"),
		},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if err := ensureIndexes(collection, indexes); err != nil {
		repoLogger.Error("Failed to create indexes for favorites collection", zap.Error(err))
	}

	return &FavoriteRepository{collection: collection, logger: repoLogger}
}

// List returns favorites matching filter, newest first.
func (r *FavoriteRepository) List(ctx context.Context, filter domain.FavoriteFilter) ([]*domain.Favorite, int64, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.PropertyID != "" {
		query["propertyId"] = filter.PropertyID
	}

	findOptions := pageOptions(filter.Limit, filter.Offset).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to list favorites from DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*favoriteDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}
	favorites := make([]*domain.Favorite, len(docs))
	for i, doc := range docs {
		favorites[i] = doc.toDomain()
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}
	return favorites, total, nil
}

// Find returns the favorite linking userID and propertyID.
func (r *FavoriteRepository) Find(ctx context.Context, userID, propertyID string) (*domain.Favorite, error) {
	var doc favoriteDocument
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "propertyId": propertyID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find favorite in DB", zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// Add inserts a favorite.
func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	r.logger.Debug("Adding favorite", zap.String("user_id", favorite.UserID), zap.String("property_id", favorite.PropertyID))

	if _, err := r.collection.InsertOne(ctx, fromDomainFavorite(favorite)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Favorite already exists", zap.String("user_id", favorite.UserID), zap.String("property_id", favorite.PropertyID))
			return domain.ErrDuplicateFavorite
		}
		r.logger.Error("Failed to insert favorite into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// Remove deletes a favorite by ID.
func (r *FavoriteRepository) Remove(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete favorite from DB", zap.Error(err), zap.String("favorite_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
