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

package signer

import (
	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
)

// Role identifies which side of an exchange a signer covers.
type Role = canonical.Role

const (
	RoleRequest  = canonical.RoleRequest
	RoleResponse = canonical.RoleResponse
)

// Attributes is the set of message fields a signer canonicalizes.
// canonical.RequestAttributes and canonical.ResponseAttributes implement it.
type Attributes interface {
	Role() Role
}

// Signer produces the signature of one message role under one protocol
// version.
type Signer interface {
	// Role returns the role this signer covers
	Role() Role

	// Version returns the protocol version this signer implements
	Version() string

	// BaseString returns the canonical base string for attrs.
	// The version carried by attrs is replaced with the signer's own version.
	BaseString(attrs Attributes) (string, error)

	// Sign computes the HMAC-SHA256 of the base string under key
	Sign(attrs Attributes, key []byte) (Signature, error)
}

// RequestBuilder canonicalizes request attributes into a base string.
type RequestBuilder func(attrs canonical.RequestAttributes) (string, error)

// ResponseBuilder canonicalizes response attributes into a base string.
type ResponseBuilder func(attrs canonical.ResponseAttributes) (string, error)
