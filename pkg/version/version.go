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

// Package version reports the library version and the protocol versions it
// speaks.
package version

import "github.com/sage-x-project/inbenta-signature-go/pkg/signer"

const (
	// Version is the current version of inbenta-signature-go
	Version = "1.0.0-dev"

	// SignatureVersion is the signature protocol version used by default
	SignatureVersion = signer.DefaultVersion

	// A2AProtocolVersion is the A2A Protocol version spoken by pkg/transport
	A2AProtocolVersion = "0.4.0"
)

// Info contains detailed version information
type Info struct {
	LibraryVersion     string   `json:"libraryVersion"`
	SignatureVersion   string   `json:"signatureVersion"`
	SupportedVersions  []string `json:"supportedVersions"`
	A2AProtocolVersion string   `json:"a2aProtocolVersion"`
}

// Get returns detailed version information. SupportedVersions lists every
// version registered in the default signer registry, deprecated ones
// included.
func Get() Info {
	return Info{
		LibraryVersion:     Version,
		SignatureVersion:   SignatureVersion,
		SupportedVersions:  signer.DefaultRegistry().Versions(),
		A2AProtocolVersion: A2AProtocolVersion,
	}
}
