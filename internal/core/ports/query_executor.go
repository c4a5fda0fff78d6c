package ports

import (
	"context"
	"encoding/json"
)

// QueryExecutor sends one GraphQL operation to the remote API and returns the
// raw "data" payload. An empty credential sends no Authorization header.
// Failures are *domain.Fault values.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, variables map[string]any, credential string) (json.RawMessage, error)
}
