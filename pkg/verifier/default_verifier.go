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
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
	"github.com/sage-x-project/inbenta-signature-go/pkg/signer"
)

// Option configures a DefaultVerifier
type Option func(*DefaultVerifier)

// WithRegistry resolves signers from r instead of the default registry
func WithRegistry(r *signer.Registry) Option {
	return func(v *DefaultVerifier) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithBasePath strips basePath from request paths before verification,
// matching clients configured with a base URL ending in basePath
func WithBasePath(basePath string) Option {
	return func(v *DefaultVerifier) {
		v.basePath = basePath
	}
}

// WithMaxSkew rejects requests whose timestamp is further than d from now.
// 0 disables the check.
func WithMaxSkew(d time.Duration) Option {
	return func(v *DefaultVerifier) {
		v.maxSkew = d
	}
}

// WithClock replaces the wall clock used by the skew check
func WithClock(now func() time.Time) Option {
	return func(v *DefaultVerifier) {
		if now != nil {
			v.now = now
		}
	}
}

// DefaultVerifier implements RequestVerifier with the signer registry
type DefaultVerifier struct {
	selector KeySelector
	registry *signer.Registry
	basePath string
	maxSkew  time.Duration
	now      func() time.Time
}

// NewDefaultVerifier creates a verifier that takes keys from selector
func NewDefaultVerifier(selector KeySelector, opts ...Option) *DefaultVerifier {
	v := &DefaultVerifier{
		selector: selector,
		registry: signer.DefaultRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyRequest verifies the signature headers of req.
func (v *DefaultVerifier) VerifyRequest(ctx context.Context, req *http.Request) (*Verification, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	signed, err := headers.FromHeader(req.Header)
	if err != nil {
		if errors.Is(err, headers.ErrMissingHeader) {
			return nil, fmt.Errorf("%w: %w", ErrMissingHeaders, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeaders, err)
	}

	if v.maxSkew > 0 {
		if err := v.checkSkew(signed.Timestamp); err != nil {
			return nil, err
		}
	}

	requestSigner, err := v.registry.ResolveRequest(signed.Version)
	if err != nil {
		return nil, err
	}

	if v.selector == nil {
		return nil, fmt.Errorf("key selector not configured")
	}
	key, err := v.selector.SelectKey(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to select key: %w", err)
	}

	body, err := readBody(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	expected, err := requestSigner.Sign(canonical.RequestAttributes{
		Method:    req.Method,
		URLPath:   canonical.StripBasePath(req.URL.EscapedPath(), v.basePath),
		Query:     canonical.ParseQuery(req.URL.RawQuery),
		Body:      body,
		Timestamp: signed.Timestamp,
	}, key)
	if err != nil {
		return nil, err
	}

	if !expected.Equal(signed.Signature) {
		return nil, ErrSignatureMismatch
	}

	return &Verification{
		Version:   signed.Version,
		Timestamp: signed.Timestamp,
		key:       key,
	}, nil
}

// ResponseHeaders signs body with the key, version and timestamp of a
// verified request.
func (v *DefaultVerifier) ResponseHeaders(verification *Verification, body []byte) (headers.Signed, error) {
	if verification == nil {
		return headers.Signed{}, fmt.Errorf("verification cannot be nil")
	}

	sig, err := v.SignResponse(verification.key, body, verification.Timestamp, verification.Version)
	if err != nil {
		return headers.Signed{}, err
	}
	return headers.Signed{
		Signature: sig.String(),
		Version:   verification.Version,
		Timestamp: verification.Timestamp,
	}, nil
}

// SignResponse signs a response body under key, timestamp and version.
func (v *DefaultVerifier) SignResponse(key []byte, body []byte, timestamp int64, version string) (signer.Signature, error) {
	responseSigner, err := v.registry.ResolveResponse(version)
	if err != nil {
		return "", err
	}
	return responseSigner.Sign(canonical.ResponseAttributes{
		Body:      body,
		Timestamp: timestamp,
	}, key)
}

// readBody drains req.Body and puts back an equivalent reader
// checkSkew bounds ts to now ± maxSkew in whole seconds. The bounds are
// compared directly so no timestamp can overflow the check.
func (v *DefaultVerifier) checkSkew(ts int64) error {
	now := v.now().Unix()
	limit := int64(v.maxSkew / time.Second)
	if ts < now-limit || ts > now+limit {
		return fmt.Errorf("%w: timestamp %d is more than %s from %d", ErrTimestampSkew, ts, v.maxSkew, now)
	}
	return nil
}

func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return body, nil
}
