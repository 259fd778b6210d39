package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// resource is the state shared by all resource clients: the dispatcher that
// resolves and sends their requests.
type resource struct {
	dispatcher Dispatcher
}

// get sends req and decodes the JSON body into out. noun names the resource in
// error messages.
func (r resource) get(ctx context.Context, req *Request, out interface{}, noun string) error {
	resp, err := r.dispatcher.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("getting %s: %w", noun, err)
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", noun, err)
	}

	return nil
}
