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

package transport

import (
	"context"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"

	"github.com/sage-x-project/inbenta-signature-go/pkg/client"
)

// WithSignedHTTPTransport returns a FactoryOption that installs the signed
// HTTP/JSON-RPC 2.0 transport for a2a-go clients.
//
// Example:
//
//	signer, _ := client.New("https://agent.example.com", key)
//	agent, err := a2aclient.NewFromCard(ctx, card,
//	    transport.WithSignedHTTPTransport(signer),
//	)
//	if err != nil {
//	    return err
//	}
//	defer agent.Destroy()
func WithSignedHTTPTransport(c *client.Client, opts ...Option) a2aclient.FactoryOption {
	return a2aclient.WithTransport(
		a2a.TransportProtocolJSONRPC,
		a2aclient.TransportFactoryFn(func(ctx context.Context, url string, card *a2a.AgentCard) (a2aclient.Transport, error) {
			return NewSignedHTTPTransport(url, c, opts...), nil
		}),
	)
}

// NewSignedClient creates an a2a-go client for card whose calls are signed
// by c.
func NewSignedClient(ctx context.Context, c *client.Client, card *a2a.AgentCard, interceptors ...a2aclient.CallInterceptor) (*a2aclient.Client, error) {
	opts := []a2aclient.FactoryOption{WithSignedHTTPTransport(c)}
	if len(interceptors) > 0 {
		opts = append(opts, a2aclient.WithInterceptors(interceptors...))
	}
	return a2aclient.NewFromCard(ctx, card, opts...)
}

// NewSignedClientWithConfig is like NewSignedClient with a custom Config.
func NewSignedClientWithConfig(ctx context.Context, c *client.Client, card *a2a.AgentCard, config a2aclient.Config, opts ...Option) (*a2aclient.Client, error) {
	return a2aclient.NewFromCard(
		ctx,
		card,
		a2aclient.WithConfig(config),
		WithSignedHTTPTransport(c, opts...),
	)
}
