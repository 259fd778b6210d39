package client

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// Static errors for err113 compliance.
var (
	ErrURLRequired = errors.New("harvest URL is required")
)

// Client implements the harvest.Client interface.
type Client struct {
	session *Session

	// Resource clients
	categories harvest.CategoriesClient
	fields     harvest.FieldsClient
	concepts   harvest.ConceptsClient
	contexts   harvest.ContextsClient
	views      harvest.ViewsClient
	queries    harvest.QueriesClient
	data       harvest.DataClient
	stats      harvest.StatsClient
}

// New creates a new Harvest client. No request is sent until the first call,
// unless config.DiscoverOnInit is set.
func New(ctx context.Context, config *harvest.Config) (*Client, error) {
	if config.URL == "" {
		return nil, ErrURLRequired
	}

	client := &Client{
		session: NewSession(config),
	}

	client.initializeResourceClients()

	if config.DiscoverOnInit {
		err := client.session.EnsureInitialized(ctx)
		if err != nil {
			return nil, err
		}
	}

	return client, nil
}

// initializeResourceClients initializes all resource clients.
func (c *Client) initializeResourceClients() {
	c.categories = NewCategoriesClient(c.session)
	c.fields = NewFieldsClient(c.session)
	c.concepts = NewConceptsClient(c.session)
	c.contexts = NewContextsClient(c.session)
	c.views = NewViewsClient(c.session)
	c.queries = NewQueriesClient(c.session)
	c.data = NewDataClient(c.session)
	c.stats = NewStatsClient(c.session)
}

// Categories implements harvest.Client.Categories.
func (c *Client) Categories() harvest.CategoriesClient {
	return c.categories
}

// Fields implements harvest.Client.Fields.
func (c *Client) Fields() harvest.FieldsClient {
	return c.fields
}

// Concepts implements harvest.Client.Concepts.
func (c *Client) Concepts() harvest.ConceptsClient {
	return c.concepts
}

// Contexts implements harvest.Client.Contexts.
func (c *Client) Contexts() harvest.ContextsClient {
	return c.contexts
}

// Views implements harvest.Client.Views.
func (c *Client) Views() harvest.ViewsClient {
	return c.views
}

// Queries implements harvest.Client.Queries.
func (c *Client) Queries() harvest.QueriesClient {
	return c.queries
}

// Data implements harvest.Client.Data.
func (c *Client) Data() harvest.DataClient {
	return c.data
}

// Stats implements harvest.Client.Stats.
func (c *Client) Stats() harvest.StatsClient {
	return c.stats
}

// Open implements harvest.Client.Open.
func (c *Client) Open(ctx context.Context, creds *harvest.Credentials) error {
	return c.session.Open(ctx, creds)
}

// Close implements harvest.Client.Close.
func (c *Client) Close() {
	c.session.Close()
}

// Ping implements harvest.Client.Ping.
func (c *Client) Ping(ctx context.Context) (*harvest.PingStatus, error) {
	return c.session.Ping(ctx)
}

// Links implements harvest.Client.Links.
func (c *Client) Links(ctx context.Context) (*harvest.Relations, error) {
	return c.session.Relations(ctx)
}

// Token implements harvest.Client.Token.
func (c *Client) Token() string {
	return c.session.Token()
}
