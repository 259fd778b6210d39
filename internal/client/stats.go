package client

import (
	"context"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// StatsClient implements harvest.StatsClient.
type StatsClient struct {
	resource
}

// NewStatsClient creates a new stats client.
func NewStatsClient(dispatcher Dispatcher) *StatsClient {
	return &StatsClient{resource{dispatcher: dispatcher}}
}

// Counts implements harvest.StatsClient.Counts.
func (c *StatsClient) Counts(ctx context.Context) ([]harvest.StatsCount, error) {
	var counts []harvest.StatsCount

	err := c.get(ctx, &Request{Rel: RelStatsCounts}, &counts, "stats counts")
	if err != nil {
		return nil, err
	}

	return counts, nil
}
