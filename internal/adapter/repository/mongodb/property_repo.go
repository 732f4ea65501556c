package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// PropertyRepository implements domain.PropertyRepository using MongoDB.
type PropertyRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewPropertyRepository binds the repository to a collection. Search
// indexes are only created when advancedIndexing is set.
func NewPropertyRepository(db *mongo.Database, collectionName string, advancedIndexing bool, log *logger.Logger) *PropertyRepository {
	collection := db.Collection(collectionName)
	repoLogger := log.Named("PropertyRepository")

	if advancedIndexing {
		indexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "price", Value: 1}},
				Options: options.Index().SetName("price_range_index"),
			},
			{
				Keys:    bson.D{{Key: "address.market", Value: 1}, {Key: "property_type", Value: 1}, {Key: "price", Value: 1}},
				Options: options.Index().SetName("market_type_compound"),
			},
			{
				Keys:    bson.D{{Key: "address.market", Value: 1}, {Key: "property_type", Value: 1}, {Key: "accommodates", Value: 1}},
				Options: options.Index().SetName("property_search_compound"),
			},
		}
		if err := ensureIndexes(collection, indexes); err != nil {
			repoLogger.Error("Failed to create indexes for properties collection", zap.Error(err))
		} else {
			repoLogger.Info("Successfully ensured indexes for properties collection")
		}
	}

	return &PropertyRepository{collection: collection, logger: repoLogger}
}

func searchQuery(filter domain.PropertyFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"summary": pattern},
			bson.M{"address.market": pattern},
			bson.M{"address.country": pattern},
		}
	}
	if filter.Location != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Location), "$options": "i"}
		query["$and"] = bson.A{
			bson.M{"$or": bson.A{
				bson.M{"address.market": pattern},
				bson.M{"address.country": pattern},
				bson.M{"address.street": pattern},
			}},
		}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}
	return query
}

// Search finds properties matching filter, with pagination.
func (r *PropertyRepository) Search(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, int64, error) {
	r.logger.Debug("Searching properties in DB", zap.Any("filter", filter))

	query := searchQuery(filter)
	cursor, err := r.collection.Find(ctx, query, pageOptions(filter.Limit, filter.Offset))
	if err != nil {
		r.logger.Error("Failed to search properties in DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*propertyDocument
	if err = cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode properties from DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}

	properties := make([]*domain.Property, len(docs))
	for i, doc := range docs {
		properties[i] = doc.toDomain()
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count properties in DB", zap.Error(err))
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}
	return properties, total, nil
}

// GetByID retrieves a property by its ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	r.logger.Debug("Getting property by ID from DB", zap.String("property_id", id))

	var doc propertyDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get property by ID from DB", zap.Error(err), zap.String("property_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// GetByIDs returns the properties found among ids, keyed by ID.
func (r *PropertyRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Property, error) {
	out := make(map[string]*domain.Property, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error("Failed to find properties by IDs in DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*propertyDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	for _, doc := range docs {
		out[doc.ID] = doc.toDomain()
	}
	return out, nil
}

// Create inserts a new property.
func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	r.logger.Info("Creating property in DB", zap.String("property_id", property.ID), zap.String("name", property.Name))

	doc, err := fromDomainProperty(property)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if _, err = r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert property into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// Delete removes a property.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	r.logger.Info("Deleting property from DB", zap.String("property_id", id))

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete property from DB", zap.Error(err), zap.String("property_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
