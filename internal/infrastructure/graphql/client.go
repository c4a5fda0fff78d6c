// Package graphql talks to the remote news API: a single GraphQL endpoint
// reached with POST requests carrying an optional bearer credential.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/metrics"
)

var operationName = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client is the remote query executor. It performs exactly one HTTP request
// per Execute: no retries, no caching. Cancellation comes from ctx only.
type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient returns a Client for endpoint. A nil httpClient uses a client
// without a timeout.
func NewClient(endpoint string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		log:      log.With().Str("component", "graphql").Logger(),
	}
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Execute sends query with variables and returns the raw data payload.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, credential string) (json.RawMessage, error) {
	op := OperationName(query)
	start := time.Now()

	data, err := c.do(ctx, query, variables, credential)

	metrics.GraphQLRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	if kind := domain.KindOf(err); kind != "" {
		result = string(kind)
	}
	metrics.GraphQLRequestsTotal.WithLabelValues(op, result).Inc()

	if err != nil {
		c.log.Debug().Err(err).Str("operation", op).Dur("took", time.Since(start)).Msg("graphql request failed")
		return nil, err
	}
	c.log.Debug().Str("operation", op).Dur("took", time.Since(start)).Msg("graphql request")
	return data, nil
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any, credential string) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, domain.NewValidationFault(fmt.Sprintf("encode variables: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewNetworkFault(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewNetworkFault(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, domain.NewTransportFault(resp.StatusCode, string(raw))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewNetworkFault(fmt.Errorf("decode response: %w", err))
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, domain.NewRemoteFault(msgs...)
	}
	return out.Data, nil
}

// OperationName extracts the operation name from a GraphQL document, or
// "anonymous" when it has none.
func OperationName(query string) string {
	if m := operationName.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	return "anonymous"
}
