package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

const (
	codeNamespaceNotFound = 26
	validationActionError = "error"
)

// SchemaStore installs collection validators and counts documents.
type SchemaStore struct {
	db     *mongo.Database
	logger *logger.Logger
}

// NewSchemaStore creates a SchemaStore over db.
func NewSchemaStore(db *mongo.Database, log *logger.Logger) *SchemaStore {
	return &SchemaStore{db: db, logger: log.Named("SchemaStore")}
}

func isNamespaceNotFound(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == codeNamespaceNotFound || cmdErr.Name == "NamespaceNotFound"
	}
	return false
}

// ApplyValidation attaches validator to collection with collMod, creating
// the collection with the validator when it does not exist yet. Invalid
// writes are always rejected.
func (s *SchemaStore) ApplyValidation(ctx context.Context, collection string, validator bson.M, level validation.Level) (validation.InstallAction, error) {
	cmd := bson.D{
		{Key: "collMod", Value: collection},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: string(level)},
		{Key: "validationAction", Value: validationActionError},
	}

	err := s.db.RunCommand(ctx, cmd).Err()
	if err == nil {
		return validation.ActionModified, nil
	}
	if !isNamespaceNotFound(err) {
		s.logger.Error("collMod failed", zap.String("collection", collection), zap.Error(err))
		return validation.ActionFailed, fmt.Errorf("collMod %s: %w", collection, err)
	}

	s.logger.Info("Collection missing, creating it with validator", zap.String("collection", collection))
	opts := options.CreateCollection().
		SetValidator(validator).
		SetValidationLevel(string(level)).
		SetValidationAction(validationActionError)
	if err := s.db.CreateCollection(ctx, collection, opts); err != nil {
		s.logger.Error("createCollection failed", zap.String("collection", collection), zap.Error(err))
		return validation.ActionFailed, fmt.Errorf("create %s: %w", collection, err)
	}
	return validation.ActionCreated, nil
}

// CountDocuments counts every document in collection.
func (s *SchemaStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return n, nil
}
