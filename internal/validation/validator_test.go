package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

type MockSchemaInstaller struct{ mock.Mock }

func (m *MockSchemaInstaller) ApplyValidation(ctx context.Context, collection string, validator bson.M, level Level) (InstallAction, error) {
	args := m.Called(ctx, collection, validator, level)
	return args.Get(0).(InstallAction), args.Error(1)
}

type MockDocumentCounter struct{ mock.Mock }

func (m *MockDocumentCounter) CountDocuments(ctx context.Context, collection string) (int64, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(int64), args.Error(1)
}

func newTestValidator(enabled bool, installer SchemaInstaller, counter DocumentCounter) *Validator {
	flags := features.New(map[features.Feature]bool{features.SchemaValidation: enabled})
	return NewValidator(flags, installer, counter, logger.NewNop(),
		PropertyRules("listingsAndReviews"), BookingRules("bookings"))
}

func TestValidator_DisabledAcceptsEverything(t *testing.T) {
	v := newTestValidator(false, nil, nil)
	assert.False(t, v.IsEnabled())

	result, err := v.Validate(KindProperty, domain.Document{})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, []string{}, result.Errors)

	result, err = v.Validate(KindBooking, domain.Document{"guests": "many"})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidator_EnabledRejectsInvalid(t *testing.T) {
	v := newTestValidator(true, nil, nil)
	assert.True(t, v.IsEnabled())

	doc := validProperty()
	delete(doc, "host")
	result, err := v.Validate(KindProperty, doc)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Host information is required")
}

func TestValidator_UnknownKind(t *testing.T) {
	v := newTestValidator(true, nil, nil)

	_, err := v.Validate(Kind("user"), domain.Document{})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = v.Rules(Kind("user"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidator_SetupValidationContinuesAfterFailure(t *testing.T) {
	installer := new(MockSchemaInstaller)
	installer.On("ApplyValidation", mock.Anything, "listingsAndReviews", mock.AnythingOfType("primitive.M"), LevelModerate).
		Return(InstallAction(""), errors.New("not authorized on sample_airbnb")).Once()
	installer.On("ApplyValidation", mock.Anything, "bookings", mock.AnythingOfType("primitive.M"), LevelStrict).
		Return(ActionCreated, nil).Once()

	v := newTestValidator(true, installer, nil)
	results, err := v.SetupValidation(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, KindProperty, results[0].Kind)
	assert.Equal(t, ActionFailed, results[0].Action)
	assert.Equal(t, "not authorized on sample_airbnb", results[0].Error)

	assert.Equal(t, KindBooking, results[1].Kind)
	assert.Equal(t, ActionCreated, results[1].Action)
	assert.Empty(t, results[1].Error)

	installer.AssertExpectations(t)
}

func TestValidator_SetupValidationDisabled(t *testing.T) {
	installer := new(MockSchemaInstaller)
	v := newTestValidator(false, installer, nil)

	results, err := v.SetupValidation(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	installer.AssertNotCalled(t, "ApplyValidation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidator_SetupWithoutConfiguredStore(t *testing.T) {
	installer := new(MockSchemaInstaller)
	installer.On("ApplyValidation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(InstallAction(""), domain.ErrConfigurationUnavailable)

	v := newTestValidator(true, installer, nil)
	results, err := v.SetupValidation(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, ActionFailed, r.Action)
	}
	assert.Zero(t, Applied(results))
}

func TestValidator_SetupOneStoreFailureIsNotConfigurationError(t *testing.T) {
	installer := new(MockSchemaInstaller)
	installer.On("ApplyValidation", mock.Anything, "listingsAndReviews", mock.Anything, mock.Anything).
		Return(ActionCreated, nil)
	installer.On("ApplyValidation", mock.Anything, "bookings", mock.Anything, mock.Anything).
		Return(InstallAction(""), domain.ErrConfigurationUnavailable)

	v := newTestValidator(true, installer, nil)
	results, err := v.SetupValidation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, Applied(results))
}

func TestValidator_InstallRulesWithoutInstaller(t *testing.T) {
	v := newTestValidator(true, nil, nil)

	_, err := v.InstallRules(context.Background(), KindBooking)
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
}

func TestValidator_InstallRulesSendsTranslatedSchema(t *testing.T) {
	installer := new(MockSchemaInstaller)
	installer.On("ApplyValidation", mock.Anything, "bookings", JSONSchema(BookingRules("bookings")), LevelStrict).
		Return(ActionModified, nil).Once()

	v := newTestValidator(true, installer, nil)
	result, err := v.InstallRules(context.Background(), KindBooking)
	require.NoError(t, err)
	assert.Equal(t, InstallResult{Kind: KindBooking, Collection: "bookings", Action: ActionModified}, result)
	installer.AssertExpectations(t)
}

func TestValidator_Stats(t *testing.T) {
	counter := new(MockDocumentCounter)
	counter.On("CountDocuments", mock.Anything, "listingsAndReviews").Return(int64(5555), nil)
	counter.On("CountDocuments", mock.Anything, "bookings").Return(int64(12), nil)

	v := newTestValidator(true, nil, counter)
	stats, err := v.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{PropertiesValidated: 5555, BookingsValidated: 12, ValidationErrors: 0}, stats)
}

func TestValidator_StatsDisabled(t *testing.T) {
	counter := new(MockDocumentCounter)
	v := newTestValidator(false, nil, counter)

	stats, err := v.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	counter.AssertNotCalled(t, "CountDocuments", mock.Anything, mock.Anything)
}

func TestValidator_StatsCountError(t *testing.T) {
	counter := new(MockDocumentCounter)
	counter.On("CountDocuments", mock.Anything, "listingsAndReviews").Return(int64(0), errors.New("connection reset"))

	v := newTestValidator(true, nil, counter)
	_, err := v.Stats(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"property": KindProperty, "properties": KindProperty, "booking": KindBooking, "bookings": KindBooking} {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseKind("users")
	assert.False(t, ok)
}
