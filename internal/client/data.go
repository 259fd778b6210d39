package client

import (
	"context"
	"encoding/json"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// DataClient implements harvest.DataClient.
type DataClient struct {
	resource
}

// NewDataClient creates a new data client.
func NewDataClient(dispatcher Dispatcher) *DataClient {
	return &DataClient{resource{dispatcher: dispatcher}}
}

// Preview implements harvest.DataClient.Preview.
func (c *DataClient) Preview(ctx context.Context) (*harvest.Preview, error) {
	var preview harvest.Preview

	err := c.get(ctx, &Request{Rel: RelPreview}, &preview, "preview")
	if err != nil {
		return nil, err
	}

	return &preview, nil
}

// Export implements harvest.DataClient.Export.
func (c *DataClient) Export(ctx context.Context, format string) (json.RawMessage, error) {
	if format == "" {
		return nil, &harvest.ArgumentError{Arg: "format"}
	}

	var export json.RawMessage

	err := c.get(ctx, &Request{Rel: RelExport, Vars: map[string]string{"type": format}}, &export, "export")
	if err != nil {
		return nil, err
	}

	return export, nil
}
