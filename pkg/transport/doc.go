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

// Package transport provides an a2a-go transport whose calls carry Inbenta
// signature headers.
//
// SignedHTTPTransport implements a2aclient.Transport over HTTP/JSON-RPC 2.0.
// Every request is signed by a client.Client and every unary response must
// carry an x-inbenta-signature that validates against the request
// timestamp, otherwise the call fails with client.ErrInvalidResponseSignature.
//
// # Usage
//
//	signer, err := client.New(agentURL, []byte(signatureKey))
//	if err != nil {
//	    return err
//	}
//
//	agent, err := transport.NewSignedClient(ctx, signer, agentCard)
//	if err != nil {
//	    return err
//	}
//	defer agent.Destroy()
//
//	task, err := agent.SendMessage(ctx, message)
//
// For more control, use the factory option directly:
//
//	agent, err := a2aclient.NewFromCard(
//	    ctx,
//	    agentCard,
//	    transport.WithSignedHTTPTransport(signer, transport.WithLogger(logger)),
//	    a2aclient.WithInterceptors(loggingInterceptor),
//	)
//
// # Streaming
//
// message/stream and tasks/resubscribe are read as Server-Sent Events. The
// request is signed like any other; the event stream itself is not
// validated because a streamed response cannot be signed before it ends.
package transport
