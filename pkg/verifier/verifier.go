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
	"context"
	"net/http"

	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
)

// RequestVerifier verifies signed requests and signs the matching responses
type RequestVerifier interface {
	// VerifyRequest checks the signature headers of req against its method,
	// path, query and body. The body is left readable.
	VerifyRequest(ctx context.Context, req *http.Request) (*Verification, error)

	// ResponseHeaders signs body for the request described by v
	ResponseHeaders(v *Verification, body []byte) (headers.Signed, error)
}

// Verification is the outcome of a successful request verification
type Verification struct {
	// Version is the protocol version the request was signed with
	Version string

	// Timestamp is the signed request timestamp. The response is signed
	// with the same value.
	Timestamp int64

	key []byte
}
