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
	"sort"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
)

// V1 is the first, and currently only, protocol version.
const V1 = "v1"

// DefaultVersion is the version used when none is configured.
const DefaultVersion = V1

// Status is the lifecycle state of a protocol version.
type Status int

const (
	// StatusUnknown is reported for versions that were never registered
	StatusUnknown Status = iota

	// StatusActive versions can sign and verify
	StatusActive

	// StatusDeprecated versions resolve but refuse to sign
	StatusDeprecated
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Entry describes one protocol version. A nil builder means the version
// has no signer for that role.
type Entry struct {
	Status   Status
	Request  RequestBuilder
	Response ResponseBuilder
}

// Registry maps protocol versions to their signers.
//
// A Registry is populated before use and is read-only afterwards; it is
// safe for concurrent lookups once registration has finished.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(V1, Entry{
		Status:   StatusActive,
		Request:  canonical.BuildRequestV1,
		Response: canonical.BuildResponseV1,
	}); err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the registry holding every built-in version.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a version to the registry.
func (r *Registry) Register(version string, entry Entry) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if entry.Status != StatusActive && entry.Status != StatusDeprecated {
		return fmt.Errorf("version %s: invalid status %s", version, entry.Status)
	}
	if entry.Request == nil && entry.Response == nil {
		return fmt.Errorf("version %s: at least one builder is required", version)
	}
	if _, exists := r.entries[version]; exists {
		return fmt.Errorf("version %s already registered", version)
	}

	r.entries[version] = entry
	return nil
}

// Status returns the lifecycle state of version.
func (r *Registry) Status(version string) Status {
	entry, ok := r.entries[version]
	if !ok {
		return StatusUnknown
	}
	return entry.Status
}

// ValidateVersion returns nil when version is registered and active.
func (r *Registry) ValidateVersion(version string) error {
	switch r.Status(version) {
	case StatusActive:
		return nil
	case StatusDeprecated:
		return fmt.Errorf("%w: signature version %s has been deprecated", ErrDeprecatedVersion, version)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
}

// Resolve returns the signer for role and version, or a *NotImplementedError
// when the registry holds none. Deprecated versions resolve; signing with
// them fails with ErrDeprecatedVersion.
func (r *Registry) Resolve(role Role, version string) (Signer, error) {
	entry, ok := r.entries[version]
	if !ok {
		return nil, &NotImplementedError{Role: role, Version: version}
	}

	switch role {
	case RoleRequest:
		if entry.Request != nil {
			return newRequestSigner(r, version, entry.Request), nil
		}
	case RoleResponse:
		if entry.Response != nil {
			return newResponseSigner(r, version, entry.Response), nil
		}
	}
	return nil, &NotImplementedError{Role: role, Version: version}
}

// ResolveRequest is Resolve for RoleRequest.
func (r *Registry) ResolveRequest(version string) (Signer, error) {
	return r.Resolve(RoleRequest, version)
}

// ResolveResponse is Resolve for RoleResponse.
func (r *Registry) ResolveResponse(version string) (Signer, error) {
	return r.Resolve(RoleResponse, version)
}

// Versions returns the registered versions in lexical order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.entries))
	for v := range r.entries {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}
