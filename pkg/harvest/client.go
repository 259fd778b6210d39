package harvest

import (
	"context"
	"encoding/json"
)

// CategoriesClient provides access to concept categories.
type CategoriesClient interface {
	All(ctx context.Context) ([]Category, error)
}

// FieldsClient provides access to data fields.
type FieldsClient interface {
	All(ctx context.Context) ([]Field, error)
}

// ConceptsClient provides access to data concepts.
type ConceptsClient interface {
	All(ctx context.Context) ([]Concept, error)
	// Queryable and Viewable filter the full concept list on the client. Each
	// call fetches the list again.
	Queryable(ctx context.Context) ([]Concept, error)
	Viewable(ctx context.Context) ([]Concept, error)
	Search(ctx context.Context, query string) ([]Concept, error)
	Get(ctx context.Context, id string) (*Concept, error)
}

// ContextsClient provides access to query contexts.
type ContextsClient interface {
	All(ctx context.Context) ([]Context, error)
	Get(ctx context.Context, id string) (*Context, error)
}

// ViewsClient provides access to query views.
type ViewsClient interface {
	All(ctx context.Context) ([]View, error)
	Get(ctx context.Context, id string) (*View, error)
}

// QueriesClient provides access to saved queries.
type QueriesClient interface {
	All(ctx context.Context) ([]Query, error)
	Public(ctx context.Context) ([]Query, error)
	Get(ctx context.Context, id string) (*Query, error)
}

// DataClient provides access to data preview and export.
type DataClient interface {
	Preview(ctx context.Context) (*Preview, error)
	Export(ctx context.Context, format string) (json.RawMessage, error)
}

// StatsClient provides access to service statistics.
type StatsClient interface {
	Counts(ctx context.Context) ([]StatsCount, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Categories() CategoriesClient
	Fields() FieldsClient
	Concepts() ConceptsClient
	Contexts() ContextsClient
	Views() ViewsClient
	Queries() QueriesClient
	Data() DataClient
	Stats() StatsClient
}

// SessionClient controls the lifetime of the session behind a Client.
type SessionClient interface {
	// Open performs the handshake again. A nil creds reuses the configured
	// credentials.
	Open(ctx context.Context, creds *Credentials) error
	Close()
	Ping(ctx context.Context) (*PingStatus, error)
	// Links returns the relations discovered by the handshake, performing it
	// first if needed.
	Links(ctx context.Context) (*Relations, error)
	Token() string
}

// Client is a client for one Harvest service.
type Client interface {
	ResourceClients
	SessionClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
