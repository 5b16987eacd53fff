package signer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{V1}, r.Versions())
	assert.Equal(t, StatusActive, r.Status(V1))
	assert.NoError(t, r.ValidateVersion(DefaultVersion))

	for _, role := range []Role{RoleRequest, RoleResponse} {
		s, err := r.Resolve(role, V1)
		require.NoError(t, err)
		assert.Equal(t, role, s.Role())
		assert.Equal(t, V1, s.Version())
	}
}

func TestRegistry_ResolveUnknownVersion(t *testing.T) {
	// Execute
	_, err := DefaultRegistry().ResolveRequest("v2")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSignerNotImplemented)
	assert.EqualError(t, err, "RequestSigner version v2 not implemented")

	var notImpl *NotImplementedError
	require.ErrorAs(t, err, &notImpl)
	assert.Equal(t, RoleRequest, notImpl.Role)
	assert.Equal(t, "v2", notImpl.Version)
}

func TestRegistry_ValidateVersion(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("v1", Entry{Status: StatusActive, Request: canonical.BuildRequestV1}))
	require.NoError(t, r.Register("v0", Entry{Status: StatusDeprecated, Response: canonical.BuildResponseV1}))

	assert.NoError(t, r.ValidateVersion("v1"))
	assert.ErrorIs(t, r.ValidateVersion("v0"), ErrDeprecatedVersion)
	assert.ErrorIs(t, r.ValidateVersion("v7"), ErrUnknownVersion)
	assert.ErrorIs(t, r.ValidateVersion(""), ErrUnknownVersion)
}

func TestRegistry_DeprecatedVersion(t *testing.T) {
	// Setup
	r := NewRegistry()
	require.NoError(t, r.Register("v0", Entry{
		Status:   StatusDeprecated,
		Request:  canonical.BuildRequestV1,
		Response: canonical.BuildResponseV1,
	}))

	// Execute
	s, err := r.ResolveRequest("v0")
	require.NoError(t, err)

	base, baseErr := s.BaseString(canonical.RequestAttributes{URLPath: "foo"})
	_, signErr := s.Sign(canonical.RequestAttributes{URLPath: "foo"}, []byte(testKey))

	// Assert
	require.NoError(t, baseErr)
	assert.Equal(t, "GET&foo&v0", base)
	assert.ErrorIs(t, signErr, ErrDeprecatedVersion)
}

func TestRegistry_MissingRoleBuilder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("v1", Entry{Status: StatusActive, Request: canonical.BuildRequestV1}))

	_, err := r.ResolveResponse("v1")

	assert.ErrorIs(t, err, ErrSignerNotImplemented)
	assert.EqualError(t, err, "ResponseSigner version v1 not implemented")
}

func TestRegistry_CustomVersion(t *testing.T) {
	// Setup
	r := NewRegistry()
	require.NoError(t, r.Register("v2", Entry{
		Status: StatusActive,
		Request: func(attrs canonical.RequestAttributes) (string, error) {
			base, err := canonical.BuildRequestV1(attrs)
			return strings.ToUpper(base), err
		},
	}))

	// Execute
	s, err := r.ResolveRequest("v2")
	require.NoError(t, err)
	base, err := s.BaseString(canonical.RequestAttributes{URLPath: "foo"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "GET&FOO&V2", base)
}

func TestRegistry_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		version string
		entry   Entry
	}{
		{name: "empty version", version: "", entry: Entry{Status: StatusActive, Request: canonical.BuildRequestV1}},
		{name: "unknown status", version: "v3", entry: Entry{Request: canonical.BuildRequestV1}},
		{name: "no builders", version: "v3", entry: Entry{Status: StatusActive}},
		{name: "duplicate", version: V1, entry: Entry{Status: StatusActive, Request: canonical.BuildRequestV1}},
	}

	r := NewRegistry()
	require.NoError(t, r.Register(V1, Entry{Status: StatusActive, Request: canonical.BuildRequestV1}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, r.Register(tt.version, tt.entry))
		})
	}
	assert.Equal(t, []string{V1}, r.Versions())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "deprecated", StatusDeprecated.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
