package client

// Relation names advertised by a Harvest service.
const (
	RelPing          = "ping"
	RelCategories    = "categories"
	RelFields        = "fields"
	RelConcepts      = "concepts"
	RelConcept       = "concept"
	RelContexts      = "contexts"
	RelContext       = "context"
	RelViews         = "views"
	RelView          = "view"
	RelQueries       = "queries"
	RelPublicQueries = "public_queries"
	RelQuery         = "query"
	RelPreview       = "preview"
	RelExport        = "export"
	RelStatsCounts   = "stats_counts"
)
