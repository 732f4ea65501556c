package features

// Metadata documents a feature for the /api/features listing.
type Metadata struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Branch          string   `json:"branch"`
	Complexity      string   `json:"complexity"`
	UseCase         string   `json:"useCase"`
	MongoDBConcepts []string `json:"mongodbConcepts"`
}

var catalog = map[Feature]Metadata{
	BasicCRUD: {
		Name:            "Basic CRUD Operations",
		Description:     "Standard Create, Read, Update, Delete operations with MongoDB",
		Branch:          "foundation-reset",
		Complexity:      "Beginner",
		UseCase:         "Basic data management",
		MongoDBConcepts: []string{"Collections", "Documents", "Queries", "Updates"},
	},
	SimpleSearch: {
		Name:            "Text Search with Regex",
		Description:     "Basic text search using MongoDB regex operators",
		Branch:          "foundation-reset",
		Complexity:      "Beginner",
		UseCase:         "Simple search functionality",
		MongoDBConcepts: []string{"$regex", "$options", "Text Queries"},
	},
	GeospatialSearch: {
		Name:            "Geospatial Queries",
		Description:     "Location-based search with 2dsphere indexes and geo queries",
		Branch:          "geospatial-search",
		Complexity:      "Intermediate",
		UseCase:         "Location-based property search, radius filtering",
		MongoDBConcepts: []string{"2dsphere Index", "$near", "$geoWithin", "GeoJSON"},
	},
	AtlasTextSearch: {
		Name:            "Atlas Search",
		Description:     "Full-text search with autocomplete, typo tolerance, and relevance scoring",
		Branch:          "atlas-search",
		Complexity:      "Intermediate",
		UseCase:         "Smart search with suggestions and ranking",
		MongoDBConcepts: []string{"Atlas Search", "Search Indexes", "Autocomplete", "Faceting"},
	},
	AggregationAnalytics: {
		Name:            "Aggregation Pipelines",
		Description:     "Complex data processing and analytics with aggregation framework",
		Branch:          "aggregation-analytics",
		Complexity:      "Advanced",
		UseCase:         "Property analytics, price trends, host statistics",
		MongoDBConcepts: []string{"$match", "$group", "$project", "$facet", "$bucket", "$lookup"},
	},
	ChangeStreams: {
		Name:            "Real-time Updates",
		Description:     "Live data updates using MongoDB Change Streams",
		Branch:          "real-time-updates",
		Complexity:      "Advanced",
		UseCase:         "Live booking updates, real-time notifications",
		MongoDBConcepts: []string{"Change Streams", "Resume Tokens", "Real-time Processing"},
	},
	Transactions: {
		Name:            "ACID Transactions",
		Description:     "Multi-document transactions for data consistency",
		Branch:          "atomic-transactions",
		Complexity:      "Advanced",
		UseCase:         "Atomic booking process, inventory management",
		MongoDBConcepts: []string{"Multi-document Transactions", "ACID Properties", "Session Management"},
	},
	TimeSeries: {
		Name:            "Time Series Collections",
		Description:     "Specialized collections for time-stamped data and analytics",
		Branch:          "time-series-analytics",
		Complexity:      "Advanced",
		UseCase:         "Booking trends, price history, occupancy metrics",
		MongoDBConcepts: []string{"Time Series Collections", "Time-based Queries", "Data Bucketing"},
	},
	VectorSearch: {
		Name:            "Vector Search & AI",
		Description:     "AI-powered recommendations using vector embeddings",
		Branch:          "ai-recommendations",
		Complexity:      "Expert",
		UseCase:         "Similar property recommendations, AI-powered search",
		MongoDBConcepts: []string{"Vector Search", "Embeddings", "Similarity Queries", "AI Integration"},
	},
	SchemaValidation: {
		Name:            "Schema Validation",
		Description:     "Data quality enforcement with JSON Schema validation",
		Branch:          "schema-validation",
		Complexity:      "Intermediate",
		UseCase:         "Data integrity, compliance, quality assurance",
		MongoDBConcepts: []string{"JSON Schema", "Validation Rules", "Data Quality"},
	},
	AdvancedIndexing: {
		Name:            "Advanced Indexing",
		Description:     "Performance optimization with specialized indexes",
		Branch:          "performance-optimization",
		Complexity:      "Expert",
		UseCase:         "Query performance, complex filtering",
		MongoDBConcepts: []string{"Compound Indexes", "Partial Indexes", "Text Indexes", "Performance"},
	},
	MongoDBCharts: {
		Name:            "MongoDB Charts",
		Description:     "Native data visualization and business intelligence",
		Branch:          "data-visualization",
		Complexity:      "Intermediate",
		UseCase:         "Business dashboards, data visualization",
		MongoDBConcepts: []string{"MongoDB Charts", "Data Visualization", "Business Intelligence"},
	},
}
