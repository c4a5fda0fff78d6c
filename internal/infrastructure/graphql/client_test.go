package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), zerolog.Nop())
}

func TestClient_Execute_Success(t *testing.T) {
	var gotBody request
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	})

	data, err := c.Execute(context.Background(), "query Ping { ok }", map[string]any{"a": 1}, "T")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
	assert.Equal(t, "query Ping { ok }", gotBody.Query)
	assert.EqualValues(t, 1, gotBody.Variables["a"])
}

func TestClient_Execute_NoCredentialNoHeader(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	_, err := c.Execute(context.Background(), "query Ping { ok }", nil, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw["variables"]))
}

func TestClient_Execute_TransportFault(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.Execute(context.Background(), "query Ping { ok }", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, "HTTP error 502: upstream down", err.Error())
}

func TestClient_Execute_RemoteFault(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"A"},{"message":"B"}]}`))
	})

	_, err := c.Execute(context.Background(), "mutation Login { login }", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Equal(t, "A, B", err.Error())
}

func TestClient_Execute_MalformedBodyIsNetworkFault(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.Execute(context.Background(), "query Ping { ok }", nil, "")
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_Execute_UnreachableIsNetworkFault(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil, zerolog.Nop())
	_, err := c.Execute(context.Background(), "query Ping { ok }", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	var f *domain.Fault
	require.True(t, errors.As(err, &f))
	assert.Error(t, f.Unwrap())
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, OpLogin, OperationName(loginMutation))
	assert.Equal(t, OpGetCurrentUser, OperationName(getCurrentUserQuery))
	assert.Equal(t, OpMarkArticleRead, OperationName(markArticleReadMutation))
	assert.Equal(t, "anonymous", OperationName("{ ok }"))
}
