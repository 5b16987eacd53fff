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
	"fmt"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
)

// hmacSigner signs the base string of a single role and version.
type hmacSigner struct {
	role     Role
	version  string
	registry *Registry
	build    func(Attributes) (string, error)
}

func newRequestSigner(registry *Registry, version string, build RequestBuilder) *hmacSigner {
	return &hmacSigner{
		role:     RoleRequest,
		version:  version,
		registry: registry,
		build: func(attrs Attributes) (string, error) {
			var req canonical.RequestAttributes
			switch a := attrs.(type) {
			case canonical.RequestAttributes:
				req = a
			case *canonical.RequestAttributes:
				if a == nil {
					return "", fmt.Errorf("%w: nil request attributes", ErrRoleMismatch)
				}
				req = *a
			default:
				return "", fmt.Errorf("%w: %s cannot sign %T", ErrRoleMismatch, RoleRequest, attrs)
			}
			req.Version = version
			return build(req)
		},
	}
}

func newResponseSigner(registry *Registry, version string, build ResponseBuilder) *hmacSigner {
	return &hmacSigner{
		role:     RoleResponse,
		version:  version,
		registry: registry,
		build: func(attrs Attributes) (string, error) {
			var resp canonical.ResponseAttributes
			switch a := attrs.(type) {
			case canonical.ResponseAttributes:
				resp = a
			case *canonical.ResponseAttributes:
				if a == nil {
					return "", fmt.Errorf("%w: nil response attributes", ErrRoleMismatch)
				}
				resp = *a
			default:
				return "", fmt.Errorf("%w: %s cannot sign %T", ErrRoleMismatch, RoleResponse, attrs)
			}
			resp.Version = version
			return build(resp)
		},
	}
}

func (s *hmacSigner) Role() Role {
	return s.role
}

func (s *hmacSigner) Version() string {
	return s.version
}

func (s *hmacSigner) BaseString(attrs Attributes) (string, error) {
	if attrs == nil {
		return "", fmt.Errorf("%w: nil attributes", ErrRoleMismatch)
	}
	return s.build(attrs)
}

func (s *hmacSigner) Sign(attrs Attributes, key []byte) (Signature, error) {
	if len(key) == 0 {
		return "", ErrEmptyKey
	}

	if err := s.registry.ValidateVersion(s.version); err != nil {
		return "", err
	}

	base, err := s.BaseString(attrs)
	if err != nil {
		return "", fmt.Errorf("failed to build %s base string: %w", s.role, err)
	}

	return ComputeSignature(base, key), nil
}
