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
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/signer"
)

// Option configures a Client.
type Option func(*Client)

// WithVersion selects the protocol version. An empty version keeps the
// default.
func WithVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.version = version
		}
	}
}

// WithTimestamp fixes the timestamp used when a call passes 0.
// Useful to get constant signatures in tests.
func WithTimestamp(timestamp int64) Option {
	return func(c *Client) {
		c.fixedTimestamp = timestamp
	}
}

// WithRegistry resolves signers from r instead of the default registry.
func WithRegistry(r *signer.Registry) Option {
	return func(c *Client) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithHTTPClient sets the client used by Do. Defaults to http.DefaultClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResponseValidation makes Do reject responses whose
// x-inbenta-signature does not validate.
func WithResponseValidation(enabled bool) Option {
	return func(c *Client) {
		c.validateResponses = enabled
	}
}

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
