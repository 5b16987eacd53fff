package signer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVersion is returned when a signature version is not present
	// in the registry.
	ErrUnknownVersion = errors.New("signature version not recognized")

	// ErrDeprecatedVersion is returned when signing with a version the
	// registry marks as deprecated.
	ErrDeprecatedVersion = errors.New("signature version deprecated")

	// ErrSignerNotImplemented matches every *NotImplementedError.
	ErrSignerNotImplemented = errors.New("signer not implemented")

	// ErrRoleMismatch is returned when attributes of one role are handed to
	// a signer of the other role.
	ErrRoleMismatch = errors.New("attributes do not match signer role")

	// ErrEmptyKey is returned when signing without a key.
	ErrEmptyKey = errors.New("signature key required")
)

// NotImplementedError reports that no signer exists for a role and version.
type NotImplementedError struct {
	Role    Role
	Version string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s version %s not implemented", e.Role, e.Version)
}

// Is reports whether target is ErrSignerNotImplemented.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrSignerNotImplemented
}
