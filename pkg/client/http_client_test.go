package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
	"github.com/sage-x-project/inbenta-signature-go/pkg/signer"
)

// signedHandler answers with body signed for the timestamp of the request
func signedHandler(t *testing.T, key string, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := strconv.ParseInt(r.Header.Get("x-inbenta-timestamp"), 10, 64)
		assert.NoError(t, err)

		s, err := signer.DefaultRegistry().ResolveResponse(signer.V1)
		assert.NoError(t, err)
		sig, err := s.Sign(canonical.ResponseAttributes{Body: []byte(body), Timestamp: ts}, []byte(key))
		assert.NoError(t, err)

		w.Header().Set("x-inbenta-signature", sig.String())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

// Test Do signs the request with the protocol headers
func TestClient_Do(t *testing.T) {
	c := newTestClient(t)

	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		// Verify signature headers match a local recomputation
		expected, err := c.GenerateRequestSignature(r.URL.RequestURI(), body, r.Method, testTimestamp)
		assert.NoError(t, err)
		assert.Equal(t, expected, r.Header.Get("x-inbenta-signature"))
		assert.Equal(t, "v1", r.Header.Get("x-inbenta-signature-version"))
		assert.Equal(t, "1552647740", r.Header.Get("x-inbenta-timestamp"))
		assert.Equal(t, `{"method": "test"}`, string(body))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": "success"}`))
	}))
	defer server.Close()

	ctx := context.Background()
	req, err := http.NewRequest("POST", server.URL+"/test/v1/foo?env=production", bytes.NewReader([]byte(`{"method": "test"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(ctx, req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Test Post method creates and sends signed POST request
func TestClient_Post(t *testing.T) {
	c := newTestClient(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify method
		assert.Equal(t, "POST", r.Method)

		// Verify content type
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// Verify body
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"jsonrpc": "2.0", "method": "test"}`, string(body))

		// Verify signature
		assert.NotEmpty(t, r.Header.Get("x-inbenta-signature"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"jsonrpc": "2.0", "result": "ok"}`))
	}))
	defer server.Close()

	resp, err := c.Post(context.Background(), server.URL, []byte(`{"jsonrpc": "2.0", "method": "test"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Test Get method creates and sends signed GET request
func TestClient_Get(t *testing.T) {
	c := newTestClient(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.NotEmpty(t, r.Header.Get("x-inbenta-signature"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Test context cancellation
func TestClient_ContextCancellation(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	req, err := http.NewRequest("GET", "http://example.com", nil)
	require.NoError(t, err)

	_, err = c.Do(ctx, req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}

// Test signing error handling
func TestClient_SigningError(t *testing.T) {
	r := signer.NewRegistry()
	require.NoError(t, r.Register("v0", signer.Entry{
		Status:   signer.StatusDeprecated,
		Request:  canonical.BuildRequestV1,
		Response: canonical.BuildResponseV1,
	}))
	c := newTestClient(t, WithRegistry(r), WithVersion("v0"))

	req, err := http.NewRequest("POST", "http://example.com", nil)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, signer.ErrDeprecatedVersion)
	assert.Contains(t, err.Error(), "failed to sign request")
}

// Test HTTP client error handling
func TestClient_HTTPError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Get(context.Background(), "://invalid-url")
	assert.Error(t, err)

	_, err = c.Post(context.Background(), "", []byte(`{"test": "data"}`))
	assert.Error(t, err)
}

// Test nil body handling in Post
func TestClient_PostNilBody(t *testing.T) {
	c := newTestClient(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := c.Post(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Test response validation accepts a correctly signed response
func TestClient_ResponseValidation(t *testing.T) {
	c := newTestClient(t, WithResponseValidation(true))

	server := httptest.NewServer(signedHandler(t, testKey, errorBody))
	defer server.Close()

	resp, err := c.Get(context.Background(), server.URL+"/test/v1/foo")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, errorBody, string(body))
}

// Test response validation rejects a response signed with another key
func TestClient_ResponseValidationRejects(t *testing.T) {
	c := newTestClient(t, WithResponseValidation(true))

	server := httptest.NewServer(signedHandler(t, "other-key", errorBody))
	defer server.Close()

	_, err := c.Get(context.Background(), server.URL+"/test/v1/foo")
	assert.ErrorIs(t, err, ErrInvalidResponseSignature)
}

// Test unsigned responses pass when validation is disabled
func TestClient_ResponseValidationDisabled(t *testing.T) {
	c := newTestClient(t)

	server := httptest.NewServer(signedHandler(t, "other-key", errorBody))
	defer server.Close()

	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Test Do with custom HTTP client
func TestClient_CustomHTTPClient(t *testing.T) {
	var called bool
	custom := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		assert.NotEmpty(t, r.Header.Get("x-inbenta-signature"))
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Header: http.Header{}, Request: r}, nil
	})}

	c := newTestClient(t, WithHTTPClient(custom))

	resp, err := c.Get(context.Background(), "https://signature.example/test/v1/foo")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
