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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionConstants(t *testing.T) {
	// Verify version constants are not empty
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, SignatureVersion, "SignatureVersion should not be empty")
	assert.NotEmpty(t, A2AProtocolVersion, "A2AProtocolVersion should not be empty")

	// Verify expected values
	assert.Equal(t, "1.0.0-dev", Version)
	assert.Equal(t, "v1", SignatureVersion)
	assert.Equal(t, "0.4.0", A2AProtocolVersion)
}

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.LibraryVersion)
	assert.Equal(t, SignatureVersion, info.SignatureVersion)
	assert.Equal(t, A2AProtocolVersion, info.A2AProtocolVersion)
	assert.Equal(t, []string{"v1"}, info.SupportedVersions)
	assert.Contains(t, info.SupportedVersions, info.SignatureVersion)
}
