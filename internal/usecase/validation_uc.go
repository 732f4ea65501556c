package usecase

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

// RuleInstaller is the part of the validator the admin endpoints drive.
type RuleInstaller interface {
	IsEnabled() bool
	Rules(kind validation.Kind) (*validation.RuleSet, error)
	SetupValidation(ctx context.Context) ([]validation.InstallResult, error)
	Stats(ctx context.Context) (validation.Stats, error)
}

// ValidationReport is the statistics view with a derived compliance rate.
type ValidationReport struct {
	validation.Stats
	ComplianceRate float64 `json:"complianceRate"`
}

// ValidationUsecase exposes rule installation and statistics.
type ValidationUsecase struct {
	validator RuleInstaller
	logger    *logger.Logger
}

// NewValidationUsecase creates a ValidationUsecase over validator.
func NewValidationUsecase(validator RuleInstaller, log *logger.Logger) *ValidationUsecase {
	return &ValidationUsecase{validator: validator, logger: log.Named("ValidationUsecase")}
}

// Setup installs every rule set on its collection.
func (uc *ValidationUsecase) Setup(ctx context.Context) ([]validation.InstallResult, error) {
	if !uc.validator.IsEnabled() {
		return nil, domain.ErrFeatureDisabled
	}
	results, err := uc.validator.SetupValidation(ctx)
	if err != nil {
		uc.logger.Error("Validation setup failed", zap.Error(err))
		return nil, err
	}
	return results, nil
}

// Report returns validation statistics. The compliance rate is a percentage
// rounded to one decimal and is 100 for empty collections.
func (uc *ValidationUsecase) Report(ctx context.Context) (*ValidationReport, error) {
	if !uc.validator.IsEnabled() {
		return nil, domain.ErrFeatureDisabled
	}
	stats, err := uc.validator.Stats(ctx)
	if err != nil {
		uc.logger.Error("Failed to read validation statistics", zap.Error(err))
		return nil, err
	}
	return &ValidationReport{Stats: stats, ComplianceRate: complianceRate(stats)}, nil
}

// Rules returns the rule table for kind with its store translation.
func (uc *ValidationUsecase) Rules(kind validation.Kind) (*validation.RuleSet, bson.M, error) {
	set, err := uc.validator.Rules(kind)
	if err != nil {
		return nil, nil, err
	}
	return set, validation.JSONSchema(set), nil
}

func complianceRate(stats validation.Stats) float64 {
	total := stats.PropertiesValidated + stats.BookingsValidated
	if total <= 0 {
		return 100
	}
	rate := float64(total-stats.ValidationErrors) / float64(total) * 100
	return math.Round(rate*10) / 10
}
