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

package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
	"github.com/sage-x-project/inbenta-signature-go/pkg/config"
	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
	"github.com/sage-x-project/inbenta-signature-go/pkg/signer"
)

// Client signs requests to an Inbenta API and validates its responses.
type Client struct {
	apiBasePath string
	key         []byte
	version     string

	// fixedTimestamp replaces a zero per-call timestamp when non-zero
	fixedTimestamp int64
	// timestamp is the last timestamp used for signing
	timestamp atomic.Int64

	registry       *signer.Registry
	requestSigner  signer.Signer
	responseSigner signer.Signer

	httpClient        *http.Client
	validateResponses bool
	logger            *zap.Logger
	now               func() time.Time
}

// New creates a signature client for the API at apiBaseURL.
//
// The path of apiBaseURL is stripped from every URL signed afterwards.
// New fails with ErrInvalidConfiguration when the URL has no host or the key
// is empty, and with a *signer.NotImplementedError when the version has no
// signers.
func New(apiBaseURL string, key []byte, opts ...Option) (*Client, error) {
	base, err := url.Parse(apiBaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid URL", ErrInvalidConfiguration)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: signature key required", ErrInvalidConfiguration)
	}

	c := &Client{
		apiBasePath: base.EscapedPath(),
		key:         append([]byte(nil), key...),
		version:     signer.DefaultVersion,
		registry:    signer.DefaultRegistry(),
		httpClient:  http.DefaultClient,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.requestSigner, err = c.registry.ResolveRequest(c.version); err != nil {
		return nil, err
	}
	if c.responseSigner, err = c.registry.ResolveResponse(c.version); err != nil {
		return nil, err
	}

	c.timestamp.Store(c.resolveTimestamp(0))
	return c, nil
}

// NewFromConfig creates a client from a loaded signature configuration.
// Options given here take precedence over the configuration.
func NewFromConfig(cfg config.SignatureConfig, opts ...Option) (*Client, error) {
	opts = append([]Option{
		WithVersion(cfg.Version),
		WithTimestamp(cfg.Timestamp),
	}, opts...)
	return New(cfg.BaseURL, []byte(cfg.Key), opts...)
}

// Timestamp returns the timestamp of the last signing call.
func (c *Client) Timestamp() int64 {
	return c.timestamp.Load()
}

// SignatureVersion returns the protocol version in use.
func (c *Client) SignatureVersion() string {
	return c.requestSigner.Version()
}

// APIBasePath returns the path of the configured API base URL.
func (c *Client) APIBasePath() string {
	return c.apiBasePath
}

// GenerateRequestSignature signs a request. rawURL may be absolute or
// relative; the API base path is stripped from its path and its query is
// parsed into the signed attributes. A zero timestamp selects the fixed
// timestamp, or the current time when none is configured.
func (c *Client) GenerateRequestSignature(rawURL string, body []byte, method string, timestamp int64) (string, error) {
	sig, _, err := c.signRequest(rawURL, body, method, timestamp)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// GetHeadersForSignature returns the headers that authenticate a request.
// Arguments are the same as for GenerateRequestSignature.
func (c *Client) GetHeadersForSignature(rawURL string, body []byte, method string, timestamp int64) (map[string]string, error) {
	signed, err := c.requestHeaders(rawURL, body, method, timestamp)
	if err != nil {
		return nil, err
	}
	return signed.Map(), nil
}

// RequestBaseString returns the base string GenerateRequestSignature would
// sign, without signing it.
func (c *Client) RequestBaseString(rawURL string, body []byte, method string, timestamp int64) (string, error) {
	return c.requestSigner.BaseString(c.requestAttributes(rawURL, body, method, c.resolveTimestamp(timestamp)))
}

// ValidateResponseSignature checks a response signature against the
// timestamp of the last signing call. A mismatch is reported as false with
// a nil error.
func (c *Client) ValidateResponseSignature(signature string, body []byte) (bool, error) {
	return c.ValidateResponseSignatureAt(signature, body, c.Timestamp())
}

// ValidateResponseSignatureAt checks a response signature against an
// explicit timestamp.
func (c *Client) ValidateResponseSignatureAt(signature string, body []byte, timestamp int64) (bool, error) {
	expected, err := c.responseSigner.Sign(canonical.ResponseAttributes{
		Body:      body,
		Timestamp: timestamp,
	}, c.key)
	if err != nil {
		return false, err
	}

	valid := expected.Equal(signature)
	if !valid {
		c.logger.Debug("response signature mismatch",
			zap.String(logging.SLSignatureVersion, c.version),
			zap.Int64(logging.SLTimestamp, timestamp))
	}
	return valid, nil
}

// SignRequest sets the signature headers on req.
func (c *Client) SignRequest(req OutgoingRequest, timestamp int64) error {
	_, err := c.signOutgoing(req, timestamp)
	return err
}

// ValidateResponse checks the x-inbenta-signature header of resp against its
// body.
func (c *Client) ValidateResponse(resp IncomingResponse) (bool, error) {
	return c.validateIncoming(resp, c.Timestamp())
}

func (c *Client) signOutgoing(req OutgoingRequest, timestamp int64) (headers.Signed, error) {
	body, err := req.Body()
	if err != nil {
		return headers.Signed{}, fmt.Errorf("failed to read request body: %w", err)
	}

	rawURL := req.URLPath()
	if query := req.RawQuery(); query != "" {
		rawURL += "?" + query
	}

	signed, err := c.requestHeaders(rawURL, body, req.Method(), timestamp)
	if err != nil {
		return headers.Signed{}, err
	}

	req.SetHeader(headers.HeaderSignatureVersion.String(), signed.Version)
	req.SetHeader(headers.HeaderTimestamp.String(), strconv.FormatInt(signed.Timestamp, 10))
	req.SetHeader(headers.HeaderSignature.String(), signed.Signature)
	return signed, nil
}

func (c *Client) validateIncoming(resp IncomingResponse, timestamp int64) (bool, error) {
	body, err := resp.Body()
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}
	return c.ValidateResponseSignatureAt(resp.Header(headers.HeaderSignature.String()), body, timestamp)
}

func (c *Client) requestHeaders(rawURL string, body []byte, method string, timestamp int64) (headers.Signed, error) {
	sig, ts, err := c.signRequest(rawURL, body, method, timestamp)
	if err != nil {
		return headers.Signed{}, err
	}
	return headers.Signed{
		Signature: sig.String(),
		Version:   c.SignatureVersion(),
		Timestamp: ts,
	}, nil
}

// signRequest returns the signature together with the timestamp it covers
// so concurrent callers never read each other's timestamp.
func (c *Client) signRequest(rawURL string, body []byte, method string, timestamp int64) (signer.Signature, int64, error) {
	ts := c.resolveTimestamp(timestamp)
	c.timestamp.Store(ts)

	attrs := c.requestAttributes(rawURL, body, method, ts)
	sig, err := c.requestSigner.Sign(attrs, c.key)
	if err != nil {
		return "", 0, err
	}

	if ce := c.logger.Check(zap.DebugLevel, "signed request"); ce != nil {
		base, _ := c.requestSigner.BaseString(attrs)
		ce.Write(
			zap.String(logging.SLMethod, attrs.Method),
			zap.String(logging.SLPath, attrs.URLPath),
			zap.Int64(logging.SLTimestamp, ts),
			zap.String(logging.SLBaseString, base),
		)
	}
	return sig, ts, nil
}

func (c *Client) requestAttributes(rawURL string, body []byte, method string, timestamp int64) canonical.RequestAttributes {
	path, rawQuery := canonical.SplitURL(rawURL)
	return canonical.RequestAttributes{
		Method:    method,
		URLPath:   canonical.StripBasePath(path, c.apiBasePath),
		Query:     canonical.ParseQuery(rawQuery),
		Body:      body,
		Timestamp: timestamp,
	}
}

func (c *Client) resolveTimestamp(timestamp int64) int64 {
	switch {
	case timestamp != 0:
		return timestamp
	case c.fixedTimestamp != 0:
		return c.fixedTimestamp
	default:
		return c.now().Unix()
	}
}
