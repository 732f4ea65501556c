// Package features holds the process-wide feature flag registry. Flags are
// resolved once at startup from configuration and are read-only afterwards.
package features

// Feature names one toggleable capability.
type Feature string

const (
	BasicCRUD            Feature = "BASIC_CRUD"
	SimpleSearch         Feature = "SIMPLE_SEARCH"
	GeospatialSearch     Feature = "GEOSPATIAL_SEARCH"
	AtlasTextSearch      Feature = "ATLAS_TEXT_SEARCH"
	AggregationAnalytics Feature = "AGGREGATION_ANALYTICS"
	ChangeStreams        Feature = "CHANGE_STREAMS"
	Transactions         Feature = "TRANSACTIONS"
	TimeSeries           Feature = "TIME_SERIES"
	VectorSearch         Feature = "VECTOR_SEARCH"
	SchemaValidation     Feature = "SCHEMA_VALIDATION"
	AdvancedIndexing     Feature = "ADVANCED_INDEXING"
	MongoDBCharts        Feature = "MONGODB_CHARTS"
)

// All lists every known feature in declaration order.
var All = []Feature{
	BasicCRUD,
	SimpleSearch,
	GeospatialSearch,
	AtlasTextSearch,
	AggregationAnalytics,
	ChangeStreams,
	Transactions,
	TimeSeries,
	VectorSearch,
	SchemaValidation,
	AdvancedIndexing,
	MongoDBCharts,
}

// Defaults are the flag values used when configuration does not override them.
var Defaults = map[Feature]bool{
	BasicCRUD:    true,
	SimpleSearch: true,
}

// Flags is an immutable snapshot of flag values.
type Flags struct {
	values map[Feature]bool
}

// New copies values into a Flags snapshot. Unknown features are dropped.
func New(values map[Feature]bool) *Flags {
	f := &Flags{values: make(map[Feature]bool, len(All))}
	for _, feature := range All {
		f.values[feature] = values[feature]
	}
	return f
}

// IsEnabled reports whether feature is switched on.
func (f *Flags) IsEnabled(feature Feature) bool {
	if f == nil {
		return false
	}
	return f.values[feature]
}

// Enabled returns the enabled features in declaration order.
func (f *Flags) Enabled() []Feature {
	out := make([]Feature, 0, len(All))
	for _, feature := range All {
		if f.IsEnabled(feature) {
			out = append(out, feature)
		}
	}
	return out
}

// Info returns the documentation metadata for feature.
func (f *Flags) Info(feature Feature) (Metadata, bool) {
	m, ok := catalog[feature]
	return m, ok
}

// ByComplexity returns the features tagged with the given complexity level.
func (f *Flags) ByComplexity(level string) []Feature {
	var out []Feature
	for _, feature := range All {
		if catalog[feature].Complexity == level {
			out = append(out, feature)
		}
	}
	return out
}

// Static is a FlagSource that always reports the same value. Handy in tests.
type Static bool

func (s Static) IsEnabled(Feature) bool { return bool(s) }
