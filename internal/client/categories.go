package client

import (
	"context"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// CategoriesClient implements harvest.CategoriesClient.
type CategoriesClient struct {
	resource
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(dispatcher Dispatcher) *CategoriesClient {
	return &CategoriesClient{resource{dispatcher: dispatcher}}
}

// All implements harvest.CategoriesClient.All.
func (c *CategoriesClient) All(ctx context.Context) ([]harvest.Category, error) {
	var categories []harvest.Category

	err := c.get(ctx, &Request{Rel: RelCategories}, &categories, "categories")
	if err != nil {
		return nil, err
	}

	return categories, nil
}
