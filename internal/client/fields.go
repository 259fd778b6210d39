package client

import (
	"context"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// FieldsClient implements harvest.FieldsClient.
type FieldsClient struct {
	resource
}

// NewFieldsClient creates a new fields client.
func NewFieldsClient(dispatcher Dispatcher) *FieldsClient {
	return &FieldsClient{resource{dispatcher: dispatcher}}
}

// All implements harvest.FieldsClient.All.
func (c *FieldsClient) All(ctx context.Context) ([]harvest.Field, error) {
	var fields []harvest.Field

	err := c.get(ctx, &Request{Rel: RelFields}, &fields, "fields")
	if err != nil {
		return nil, err
	}

	return fields, nil
}
