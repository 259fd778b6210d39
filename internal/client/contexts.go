package client

import (
	"context"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// ContextsClient implements harvest.ContextsClient.
type ContextsClient struct {
	resource
}

// NewContextsClient creates a new contexts client.
func NewContextsClient(dispatcher Dispatcher) *ContextsClient {
	return &ContextsClient{resource{dispatcher: dispatcher}}
}

// All implements harvest.ContextsClient.All.
func (c *ContextsClient) All(ctx context.Context) ([]harvest.Context, error) {
	var contexts []harvest.Context

	err := c.get(ctx, &Request{Rel: RelContexts}, &contexts, "contexts")
	if err != nil {
		return nil, err
	}

	return contexts, nil
}

// Get implements harvest.ContextsClient.Get.
func (c *ContextsClient) Get(ctx context.Context, id string) (*harvest.Context, error) {
	if id == "" {
		return nil, &harvest.ArgumentError{Arg: "id"}
	}

	var queryContext harvest.Context

	err := c.get(ctx, &Request{Rel: RelContext, Vars: map[string]string{"id": id}}, &queryContext, "context")
	if err != nil {
		return nil, err
	}

	return &queryContext, nil
}
