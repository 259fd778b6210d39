package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// ConceptsClient implements harvest.ConceptsClient.
type ConceptsClient struct {
	resource
}

// NewConceptsClient creates a new concepts client.
func NewConceptsClient(dispatcher Dispatcher) *ConceptsClient {
	return &ConceptsClient{resource{dispatcher: dispatcher}}
}

// All implements harvest.ConceptsClient.All.
func (c *ConceptsClient) All(ctx context.Context) ([]harvest.Concept, error) {
	var concepts []harvest.Concept

	err := c.get(ctx, &Request{Rel: RelConcepts}, &concepts, "concepts")
	if err != nil {
		return nil, err
	}

	return concepts, nil
}

// Queryable implements harvest.ConceptsClient.Queryable.
func (c *ConceptsClient) Queryable(ctx context.Context) ([]harvest.Concept, error) {
	return c.filter(ctx, func(concept harvest.Concept) bool {
		return concept.Queryable
	})
}

// Viewable implements harvest.ConceptsClient.Viewable.
func (c *ConceptsClient) Viewable(ctx context.Context) ([]harvest.Concept, error) {
	return c.filter(ctx, func(concept harvest.Concept) bool {
		return concept.Viewable
	})
}

// Search implements harvest.ConceptsClient.Search.
func (c *ConceptsClient) Search(ctx context.Context, query string) ([]harvest.Concept, error) {
	if query == "" {
		return nil, &harvest.ArgumentError{Arg: "query"}
	}

	var concepts []harvest.Concept

	req := &Request{
		Rel:   RelConcepts,
		Query: url.Values{"query": []string{query}},
	}

	err := c.get(ctx, req, &concepts, "concepts")
	if err != nil {
		return nil, err
	}

	return concepts, nil
}

// Get implements harvest.ConceptsClient.Get.
func (c *ConceptsClient) Get(ctx context.Context, id string) (*harvest.Concept, error) {
	if id == "" {
		return nil, &harvest.ArgumentError{Arg: "id"}
	}

	var concept harvest.Concept

	err := c.get(ctx, &Request{Rel: RelConcept, Vars: map[string]string{"id": id}}, &concept, "concept")
	if err != nil {
		return nil, err
	}

	return &concept, nil
}

func (c *ConceptsClient) filter(ctx context.Context, keep func(harvest.Concept) bool) ([]harvest.Concept, error) {
	concepts, err := c.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]harvest.Concept, 0, len(concepts))

	for _, concept := range concepts {
		if keep(concept) {
			filtered = append(filtered, concept)
		}
	}

	return filtered, nil
}
