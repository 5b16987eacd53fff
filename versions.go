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

// Package inbentasig provides version information for inbenta-signature-go.
package inbentasig

import "github.com/sage-x-project/inbenta-signature-go/pkg/version"

const (
	// Version is the current version of inbenta-signature-go
	Version = version.Version

	// SignatureVersion is the signature protocol version used by default
	SignatureVersion = version.SignatureVersion

	// A2AProtocolVersion is the A2A Protocol specification version the
	// signed transport supports. See: https://github.com/a2aproject/A2A
	A2AProtocolVersion = version.A2AProtocolVersion
)

// VersionInfo contains detailed version information
type VersionInfo = version.Info

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return version.Get()
}
