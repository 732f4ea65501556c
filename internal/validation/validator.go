package validation

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// ErrUnknownKind is returned for a document kind without a rule set.
var ErrUnknownKind = errors.New("unknown document kind")

// InstallAction reports what installing a rule set did to its collection.
type InstallAction string

const (
	ActionModified InstallAction = "modified"
	ActionCreated  InstallAction = "created"
	ActionFailed   InstallAction = "failed"
	ActionSkipped  InstallAction = "skipped"
)

// FlagSource is the read-only feature flag accessor.
type FlagSource interface {
	IsEnabled(feature features.Feature) bool
}

// SchemaInstaller attaches a validator document to a collection, creating
// the collection when it does not exist yet. Writes violating the
// validator are rejected by the store.
type SchemaInstaller interface {
	ApplyValidation(ctx context.Context, collection string, validator bson.M, level Level) (InstallAction, error)
}

// DocumentCounter counts documents in a collection.
type DocumentCounter interface {
	CountDocuments(ctx context.Context, collection string) (int64, error)
}

// InstallResult is the outcome of installing one rule set.
type InstallResult struct {
	Kind       Kind          `json:"kind"`
	Collection string        `json:"collection"`
	Action     InstallAction `json:"action"`
	Error      string        `json:"error,omitempty"`
}

// Stats are the validation counters. ValidationErrors stays zero: rejected
// documents are not recorded anywhere.
type Stats struct {
	PropertiesValidated int64 `json:"propertiesValidated"`
	BookingsValidated   int64 `json:"bookingsValidated"`
	ValidationErrors    int64 `json:"validationErrors"`
}

// Validator evaluates documents against their rule sets and installs the
// same rules on the store.
type Validator struct {
	flags     FlagSource
	installer SchemaInstaller
	counter   DocumentCounter
	logger    *logger.Logger
	sets      map[Kind]*RuleSet
	order     []Kind
}

// NewValidator builds a validator over the given rule sets. installer and
// counter may be nil when no store is configured.
func NewValidator(flags FlagSource, installer SchemaInstaller, counter DocumentCounter, appLogger *logger.Logger, sets ...*RuleSet) *Validator {
	v := &Validator{
		flags:     flags,
		installer: installer,
		counter:   counter,
		logger:    appLogger.Named("Validator"),
		sets:      make(map[Kind]*RuleSet, len(sets)),
	}
	for _, set := range sets {
		if _, dup := v.sets[set.Kind]; !dup {
			v.order = append(v.order, set.Kind)
		}
		v.sets[set.Kind] = set
	}
	return v
}

// IsEnabled reports whether schema validation is switched on.
func (v *Validator) IsEnabled() bool {
	return v.flags != nil && v.flags.IsEnabled(features.SchemaValidation)
}

// Rules returns the rule set for kind.
func (v *Validator) Rules(kind Kind) (*RuleSet, error) {
	set, ok := v.sets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return set, nil
}

// Validate checks doc against the rules for kind. Every document passes
// while validation is disabled.
func (v *Validator) Validate(kind Kind, doc domain.Document) (Result, error) {
	if !v.IsEnabled() {
		return Result{IsValid: true, Errors: []string{}}, nil
	}
	set, err := v.Rules(kind)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(set, doc), nil
}

// InstallRules pushes the rule set for kind to its collection.
func (v *Validator) InstallRules(ctx context.Context, kind Kind) (InstallResult, error) {
	set, err := v.Rules(kind)
	if err != nil {
		return InstallResult{}, err
	}
	result := InstallResult{Kind: kind, Collection: set.Collection}

	if !v.IsEnabled() {
		result.Action = ActionSkipped
		return result, nil
	}
	if v.installer == nil {
		return result, domain.ErrConfigurationUnavailable
	}

	action, err := v.installer.ApplyValidation(ctx, set.Collection, JSONSchema(set), set.Level)
	if err != nil {
		result.Action = ActionFailed
		result.Error = err.Error()
		return result, err
	}
	result.Action = action
	v.logger.Info("Validation rules installed",
		zap.String("kind", string(kind)),
		zap.String("collection", set.Collection),
		zap.String("action", string(action)),
		zap.String("level", string(set.Level)),
	)
	return result, nil
}

// SetupValidation installs every rule set in turn. A failure on one
// collection is logged and the remaining sets are still installed.
func (v *Validator) SetupValidation(ctx context.Context) ([]InstallResult, error) {
	if !v.IsEnabled() {
		return nil, nil
	}
	if v.installer == nil {
		return nil, domain.ErrConfigurationUnavailable
	}

	results := make([]InstallResult, 0, len(v.order))
	unavailable := 0
	for _, kind := range v.order {
		result, err := v.InstallRules(ctx, kind)
		if err != nil {
			if errors.Is(err, domain.ErrConfigurationUnavailable) {
				unavailable++
			}
			v.logger.Warn("Validation setup failed for collection, continuing",
				zap.String("kind", string(kind)),
				zap.String("collection", result.Collection),
				zap.Error(err),
			)
		}
		results = append(results, result)
	}
	// No store behind any collection is a configuration problem, not a
	// per-collection failure.
	if len(results) > 0 && unavailable == len(results) {
		return results, domain.ErrConfigurationUnavailable
	}
	return results, nil
}

// Applied reports how many results installed their rules.
func Applied(results []InstallResult) int {
	n := 0
	for _, r := range results {
		if r.Action == ActionCreated || r.Action == ActionModified {
			n++
		}
	}
	return n
}

// Stats reports current document counts of the validated collections.
func (v *Validator) Stats(ctx context.Context) (Stats, error) {
	if !v.IsEnabled() {
		return Stats{}, nil
	}
	if v.counter == nil {
		return Stats{}, domain.ErrConfigurationUnavailable
	}

	var stats Stats
	if set, ok := v.sets[KindProperty]; ok {
		n, err := v.counter.CountDocuments(ctx, set.Collection)
		if err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", set.Collection, err)
		}
		stats.PropertiesValidated = n
	}
	if set, ok := v.sets[KindBooking]; ok {
		n, err := v.counter.CountDocuments(ctx, set.Collection)
		if err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", set.Collection, err)
		}
		stats.BookingsValidated = n
	}
	return stats, nil
}
