package client

import (
	"context"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// QueriesClient implements harvest.QueriesClient.
type QueriesClient struct {
	resource
}

// NewQueriesClient creates a new queries client.
func NewQueriesClient(dispatcher Dispatcher) *QueriesClient {
	return &QueriesClient{resource{dispatcher: dispatcher}}
}

// All implements harvest.QueriesClient.All.
func (c *QueriesClient) All(ctx context.Context) ([]harvest.Query, error) {
	return c.list(ctx, RelQueries, "queries")
}

// Public implements harvest.QueriesClient.Public.
func (c *QueriesClient) Public(ctx context.Context) ([]harvest.Query, error) {
	return c.list(ctx, RelPublicQueries, "public queries")
}

// Get implements harvest.QueriesClient.Get.
func (c *QueriesClient) Get(ctx context.Context, id string) (*harvest.Query, error) {
	if id == "" {
		return nil, &harvest.ArgumentError{Arg: "id"}
	}

	var query harvest.Query

	err := c.get(ctx, &Request{Rel: RelQuery, Vars: map[string]string{"id": id}}, &query, "query")
	if err != nil {
		return nil, err
	}

	return &query, nil
}

func (c *QueriesClient) list(ctx context.Context, rel, noun string) ([]harvest.Query, error) {
	var queries []harvest.Query

	err := c.get(ctx, &Request{Rel: rel}, &queries, noun)
	if err != nil {
		return nil, err
	}

	return queries, nil
}
