// Copyright (C) 2025 SAGE-X Project
//
// This file is part of inbenta-signature-go.
//
// inbenta-signature-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// inbenta-signature-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with inbenta-signature-go.  If not, see <https://www.gnu.org/licenses/>.

package verifier

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
	"github.com/sage-x-project/inbenta-signature-go/pkg/client"
	"github.com/sage-x-project/inbenta-signature-go/pkg/signer"
)

const (
	testKey       = "my-signature-key"
	testTimestamp = int64(1552647740)
)

func readCloser(body []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(body))
}

// signedRequest builds a request signed by a client configured with baseURL
func signedRequest(t *testing.T, baseURL, key, method, target, body string) *http.Request {
	t.Helper()

	c, err := client.New(baseURL, []byte(key), client.WithTimestamp(testTimestamp))
	require.NoError(t, err)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	require.NoError(t, c.SignRequest(client.FromHTTPRequest(req), 0))
	return req
}

func TestDefaultVerifier_ValidSignature(t *testing.T) {
	// Setup
	req := signedRequest(t, "https://api.example.com", testKey, "POST", "https://api.example.com/v1/foo?env=production&q=flight+offer", `{"a":1}`)
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	// Execute
	verification, err := v.VerifyRequest(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "v1", verification.Version)
	assert.Equal(t, testTimestamp, verification.Timestamp)

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestDefaultVerifier_QueryOrderAndSpaceEncoding(t *testing.T) {
	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo?a=1&q=flight+offer", "")
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	// a proxy reorders the query and re-encodes the space
	req.URL.RawQuery = "q=flight%20offer&a=1"

	_, err := v.VerifyRequest(context.Background(), req)

	assert.NoError(t, err)
}

func TestDefaultVerifier_BasePath(t *testing.T) {
	// Setup
	req := signedRequest(t, "https://signature.example/test/v1", testKey, "GET", "https://signature.example/test/v1/foo/bar", "")

	// Execute
	_, withoutBase := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey))).VerifyRequest(context.Background(), req)
	_, withBase := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)), WithBasePath("/test/v1")).VerifyRequest(context.Background(), req)

	// Assert
	assert.ErrorIs(t, withoutBase, ErrSignatureMismatch)
	assert.NoError(t, withBase)
}

func TestDefaultVerifier_MissingHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "https://api.example.com/v1/foo", nil)
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	_, err := v.VerifyRequest(context.Background(), req)

	assert.ErrorIs(t, err, ErrMissingHeaders)
}

func TestDefaultVerifier_InvalidTimestamp(t *testing.T) {
	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")
	req.Header.Set("x-inbenta-timestamp", "not-a-number")
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	_, err := v.VerifyRequest(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidHeaders)
}

func TestDefaultVerifier_Tampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(req *http.Request)
	}{
		{name: "body", tamper: func(req *http.Request) { req.Body = readCloser([]byte(`{"a":2}`)) }},
		{name: "query", tamper: func(req *http.Request) { req.URL.RawQuery = "env=development" }},
		{name: "path", tamper: func(req *http.Request) { req.URL.Path = "/v1/bar" }},
		{name: "method", tamper: func(req *http.Request) { req.Method = "PUT" }},
		{name: "timestamp", tamper: func(req *http.Request) { req.Header.Set("x-inbenta-timestamp", "1552647741") }},
		{name: "signature", tamper: func(req *http.Request) {
			req.Header.Set("x-inbenta-signature", strings.Repeat("0", 64))
		}},
	}

	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			req := signedRequest(t, "https://api.example.com", testKey, "POST", "https://api.example.com/v1/foo?env=production", `{"a":1}`)
			tt.tamper(req)

			// Execute
			_, err := v.VerifyRequest(context.Background(), req)

			// Assert
			assert.ErrorIs(t, err, ErrSignatureMismatch)
		})
	}
}

func TestDefaultVerifier_WrongKey(t *testing.T) {
	req := signedRequest(t, "https://api.example.com", "other-key", "GET", "https://api.example.com/v1/foo", "")
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	_, err := v.VerifyRequest(context.Background(), req)

	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestDefaultVerifier_UnknownVersion(t *testing.T) {
	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")
	req.Header.Set("x-inbenta-signature-version", "v2")
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	_, err := v.VerifyRequest(context.Background(), req)

	assert.ErrorIs(t, err, signer.ErrSignerNotImplemented)
}

func TestDefaultVerifier_DeprecatedVersion(t *testing.T) {
	// Setup
	r := signer.NewRegistry()
	require.NoError(t, r.Register("v1", signer.Entry{
		Status:   signer.StatusDeprecated,
		Request:  canonical.BuildRequestV1,
		Response: canonical.BuildResponseV1,
	}))
	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)), WithRegistry(r))

	// Execute
	_, err := v.VerifyRequest(context.Background(), req)

	// Assert
	assert.ErrorIs(t, err, signer.ErrDeprecatedVersion)
}

func TestDefaultVerifier_MaxSkew(t *testing.T) {
	signedAt := time.Unix(testTimestamp, 0)

	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "same second", now: signedAt},
		{name: "within skew", now: signedAt.Add(4 * time.Minute)},
		{name: "clock behind", now: signedAt.Add(-4 * time.Minute)},
		{name: "too old", now: signedAt.Add(6 * time.Minute), wantErr: true},
		{name: "from the future", now: signedAt.Add(-6 * time.Minute), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")
			now := tt.now
			v := NewDefaultVerifier(
				NewStaticKeySelector([]byte(testKey)),
				WithMaxSkew(5*time.Minute),
				WithClock(func() time.Time { return now }),
			)

			_, err := v.VerifyRequest(context.Background(), req)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTimestampSkew)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Test that timestamps far outside the skew bound are rejected without overflow
func TestDefaultVerifier_MaxSkewExtremeTimestamps(t *testing.T) {
	now := time.Unix(testTimestamp, 0)

	tests := []struct {
		name      string
		timestamp int64
	}{
		{name: "one hour ahead", timestamp: testTimestamp + 3600},
		{name: "far future", timestamp: 1 << 62},
		{name: "max int64", timestamp: math.MaxInt64},
		{name: "far past", timestamp: math.MinInt64 + 1},
		{name: "min int64", timestamp: math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, err := client.New("https://api.example.com", []byte(testKey))
			require.NoError(t, err)
			req := httptest.NewRequest("GET", "https://api.example.com/v1/foo", nil)
			require.NoError(t, c.SignRequest(client.FromHTTPRequest(req), tt.timestamp))

			v := NewDefaultVerifier(
				NewStaticKeySelector([]byte(testKey)),
				WithMaxSkew(5*time.Minute),
				WithClock(func() time.Time { return now }),
			)

			// Execute
			_, err = v.VerifyRequest(context.Background(), req)

			// Assert
			assert.ErrorIs(t, err, ErrTimestampSkew)
		})
	}
}

func TestDefaultVerifier_KeySelection(t *testing.T) {
	// Setup
	selector := NewHeaderKeySelector(map[string][]byte{
		"instance-a": []byte("key-a"),
		"instance-b": []byte("key-b"),
	})
	v := NewDefaultVerifier(selector)

	req := signedRequest(t, "https://api.example.com", "key-b", "GET", "https://api.example.com/v1/foo", "")

	// Execute
	req.Header.Set(APIKeyHeader, "instance-b")
	_, matching := v.VerifyRequest(context.Background(), req)

	req.Header.Set(APIKeyHeader, "instance-a")
	_, other := v.VerifyRequest(context.Background(), req)

	req.Header.Del(APIKeyHeader)
	_, missing := v.VerifyRequest(context.Background(), req)

	// Assert
	assert.NoError(t, matching)
	assert.ErrorIs(t, other, ErrSignatureMismatch)
	assert.ErrorIs(t, missing, ErrUnknownKey)
}

func TestDefaultVerifier_NilSelector(t *testing.T) {
	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")

	_, err := NewDefaultVerifier(nil).VerifyRequest(context.Background(), req)

	assert.Error(t, err)
}

func TestDefaultVerifier_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")
	_, err := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey))).VerifyRequest(ctx, req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}

func TestDefaultVerifier_ResponseHeaders(t *testing.T) {
	// Setup
	body := []byte(`{"error":{"message":"Signature provided is not valid","code":403}}`)
	req := signedRequest(t, "https://api.example.com", testKey, "GET", "https://api.example.com/v1/foo", "")
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	verification, err := v.VerifyRequest(context.Background(), req)
	require.NoError(t, err)

	// Execute
	signed, err := v.ResponseHeaders(verification, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "26fcb2a6692ab506cb7f95926be5587ecf90cfd9cfc0cc98d246a7d939a49239", signed.Signature)
	assert.Equal(t, "v1", signed.Version)
	assert.Equal(t, testTimestamp, signed.Timestamp)

	// the client accepts the response
	c, err := client.New("https://api.example.com", []byte(testKey))
	require.NoError(t, err)
	valid, err := c.ValidateResponseSignatureAt(signed.Signature, body, signed.Timestamp)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestDefaultVerifier_ResponseHeadersNil(t *testing.T) {
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	_, err := v.ResponseHeaders(nil, nil)

	assert.Error(t, err)
}

func TestDefaultVerifier_SignResponseUnknownVersion(t *testing.T) {
	v := NewDefaultVerifier(NewStaticKeySelector([]byte(testKey)))

	_, err := v.SignResponse([]byte(testKey), nil, testTimestamp, "v2")

	assert.ErrorIs(t, err, signer.ErrSignerNotImplemented)
	assert.EqualError(t, err, "ResponseSigner version v2 not implemented")
}
