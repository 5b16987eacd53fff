package verifier

import (
	"context"
	"fmt"
	"net/http"
)

// APIKeyHeader identifies the calling Inbenta instance.
const APIKeyHeader = "x-inbenta-key"

// StaticKeySelector returns the same key for every request
type StaticKeySelector struct {
	key []byte
}

// NewStaticKeySelector creates a selector for a single shared key
func NewStaticKeySelector(key []byte) *StaticKeySelector {
	return &StaticKeySelector{key: append([]byte(nil), key...)}
}

// SelectKey returns the configured key
func (s *StaticKeySelector) SelectKey(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(s.key) == 0 {
		return nil, fmt.Errorf("%w: no key configured", ErrUnknownKey)
	}
	return s.key, nil
}

// HeaderKeySelector looks up the signature key by the value of a request
// header, x-inbenta-key by default. It serves several API keys from one
// endpoint.
type HeaderKeySelector struct {
	header string
	keys   map[string][]byte
}

// NewHeaderKeySelector creates a selector over keys, mapping API key to
// signature key
func NewHeaderKeySelector(keys map[string][]byte) *HeaderKeySelector {
	copied := make(map[string][]byte, len(keys))
	for apiKey, key := range keys {
		copied[apiKey] = append([]byte(nil), key...)
	}
	return &HeaderKeySelector{header: APIKeyHeader, keys: copied}
}

// WithHeader changes the header holding the lookup value
func (s *HeaderKeySelector) WithHeader(header string) *HeaderKeySelector {
	s.header = header
	return s
}

// SelectKey returns the key registered for the request's header value
func (s *HeaderKeySelector) SelectKey(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	id := req.Header.Get(s.header)
	if id == "" {
		return nil, fmt.Errorf("%w: missing %s header", ErrUnknownKey, s.header)
	}

	key, ok := s.keys[id]
	if !ok || len(key) == 0 {
		return nil, fmt.Errorf("%w: unregistered %s", ErrUnknownKey, s.header)
	}
	return key, nil
}
