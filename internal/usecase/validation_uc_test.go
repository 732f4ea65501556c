package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

type unavailableSchemaStore struct{}

func (unavailableSchemaStore) ApplyValidation(context.Context, string, bson.M, validation.Level) (validation.InstallAction, error) {
	return validation.ActionFailed, domain.ErrConfigurationUnavailable
}

type stubInstaller struct {
	enabled  bool
	stats    validation.Stats
	statsErr error
	results  []validation.InstallResult
}

func (s *stubInstaller) IsEnabled() bool { return s.enabled }

func (s *stubInstaller) Rules(kind validation.Kind) (*validation.RuleSet, error) {
	switch kind {
	case validation.KindProperty:
		return validation.PropertyRules("listingsAndReviews"), nil
	case validation.KindBooking:
		return validation.BookingRules("bookings"), nil
	}
	return nil, validation.ErrUnknownKind
}

func (s *stubInstaller) SetupValidation(context.Context) ([]validation.InstallResult, error) {
	return s.results, nil
}

func (s *stubInstaller) Stats(context.Context) (validation.Stats, error) {
	return s.stats, s.statsErr
}

func TestValidationUsecase_Disabled(t *testing.T) {
	uc := NewValidationUsecase(&stubInstaller{}, logger.NewNop())

	_, err := uc.Setup(context.Background())
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
	_, err = uc.Report(context.Background())
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}

func TestValidationUsecase_Setup(t *testing.T) {
	results := []validation.InstallResult{
		{Kind: validation.KindProperty, Collection: "listingsAndReviews", Action: validation.ActionModified},
		{Kind: validation.KindBooking, Collection: "bookings", Action: validation.ActionCreated},
	}
	uc := NewValidationUsecase(&stubInstaller{enabled: true, results: results}, logger.NewNop())

	got, err := uc.Setup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, results, got)
}

func TestValidationUsecase_Report(t *testing.T) {
	tests := []struct {
		name  string
		stats validation.Stats
		want  float64
	}{
		{"empty collections", validation.Stats{}, 100},
		{"no errors", validation.Stats{PropertiesValidated: 5555, BookingsValidated: 12}, 100},
		{"one decimal", validation.Stats{PropertiesValidated: 2, BookingsValidated: 1, ValidationErrors: 1}, 66.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewValidationUsecase(&stubInstaller{enabled: true, stats: tt.stats}, logger.NewNop())
			report, err := uc.Report(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.stats, report.Stats)
			assert.InDelta(t, tt.want, report.ComplianceRate, 1e-9)
		})
	}
}

func TestValidationUsecase_ReportError(t *testing.T) {
	uc := NewValidationUsecase(&stubInstaller{enabled: true, statsErr: domain.ErrConfigurationUnavailable}, logger.NewNop())
	_, err := uc.Report(context.Background())
	assert.True(t, errors.Is(err, domain.ErrConfigurationUnavailable))
}

func TestValidationUsecase_Rules(t *testing.T) {
	uc := NewValidationUsecase(&stubInstaller{}, logger.NewNop())

	set, schema, err := uc.Rules(validation.KindBooking)
	require.NoError(t, err)
	assert.Equal(t, "bookings", set.Collection)
	assert.Contains(t, schema, "$jsonSchema")

	_, _, err = uc.Rules(validation.Kind("reviews"))
	assert.ErrorIs(t, err, validation.ErrUnknownKind)
}

func TestValidationUsecase_SetupWithoutStore(t *testing.T) {
	flags := features.New(map[features.Feature]bool{features.SchemaValidation: true})
	validator := validation.NewValidator(flags, unavailableSchemaStore{}, nil, logger.NewNop(),
		validation.PropertyRules("listingsAndReviews"), validation.BookingRules("bookings"))
	uc := NewValidationUsecase(validator, logger.NewNop())

	results, err := uc.Setup(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
	assert.Nil(t, results)
}
