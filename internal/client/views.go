package client

import (
	"context"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// ViewsClient implements harvest.ViewsClient.
type ViewsClient struct {
	resource
}

// NewViewsClient creates a new views client.
func NewViewsClient(dispatcher Dispatcher) *ViewsClient {
	return &ViewsClient{resource{dispatcher: dispatcher}}
}

// All implements harvest.ViewsClient.All.
func (c *ViewsClient) All(ctx context.Context) ([]harvest.View, error) {
	var views []harvest.View

	err := c.get(ctx, &Request{Rel: RelViews}, &views, "views")
	if err != nil {
		return nil, err
	}

	return views, nil
}

// Get implements harvest.ViewsClient.Get.
func (c *ViewsClient) Get(ctx context.Context, id string) (*harvest.View, error) {
	if id == "" {
		return nil, &harvest.ArgumentError{Arg: "id"}
	}

	var view harvest.View

	err := c.get(ctx, &Request{Rel: RelView, Vars: map[string]string{"id": id}}, &view, "view")
	if err != nil {
		return nil, err
	}

	return &view, nil
}
