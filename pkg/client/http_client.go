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
	"bytes"
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
)

// Do signs req, executes it and, when response validation is enabled,
// checks the response signature against the request timestamp.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	// Check context first
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	req = req.WithContext(ctx)

	signed, err := c.signOutgoing(FromHTTPRequest(req), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if !c.validateResponses {
		return resp, nil
	}

	valid, err := c.validateIncoming(FromHTTPResponse(resp), signed.Timestamp)
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to validate response: %w", err)
	}
	if !valid {
		_ = resp.Body.Close()
		c.logger.Warn("rejected response with invalid signature",
			zap.String(logging.SLMethod, req.Method),
			zap.String(logging.SLPath, req.URL.Path),
			zap.Int(logging.SLStatus, resp.StatusCode))
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidResponseSignature, req.Method, req.URL.Path)
	}

	return resp, nil
}

// Post sends a signed POST request with a JSON body
func (c *Client) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Get sends a signed GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.Do(ctx, req)
}
