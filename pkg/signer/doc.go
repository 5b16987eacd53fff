// Package signer computes Inbenta API signatures.
//
// A signature is the lowercase hex HMAC-SHA256 of a canonical base string,
// keyed with the shared signature key. Base strings are produced by the
// canonical package; this package binds them to protocol versions and
// message roles.
//
// # Resolving Signers
//
// Signers are looked up in a Registry by role and version:
//
//	requestSigner, err := signer.DefaultRegistry().ResolveRequest(signer.V1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := requestSigner.Sign(canonical.RequestAttributes{
//	    Method:    "GET",
//	    URLPath:   "v1/foo/bar",
//	    Timestamp: time.Now().Unix(),
//	}, key)
//
// A version without a signer for the requested role yields a
// *NotImplementedError, which matches ErrSignerNotImplemented:
//
//	_, err := signer.DefaultRegistry().ResolveRequest("v2")
//	// err: RequestSigner version v2 not implemented
//
// # Versions
//
// The default registry holds a single active version, V1. Versions carry a
// Status:
//
//   - StatusActive - usable for signing and verification
//   - StatusDeprecated - resolves, but Sign returns ErrDeprecatedVersion
//
// BaseString keeps working for deprecated versions so stored exchanges can
// still be inspected.
//
// Additional versions are added with Register:
//
//	r := signer.NewRegistry()
//	err := r.Register("v2", signer.Entry{
//	    Status:   signer.StatusActive,
//	    Request:  buildRequestV2,
//	    Response: buildResponseV2,
//	})
//
// Registration must finish before the registry is shared between
// goroutines.
//
// # Comparing Signatures
//
// Signature.Equal compares in constant time and is case sensitive:
//
//	if !expected.Equal(r.Header.Get("x-inbenta-signature")) {
//	    // reject
//	}
//
// # Error Handling
//
// Common signing errors:
//
//   - ErrEmptyKey: no signature key was given
//   - ErrRoleMismatch: response attributes handed to a request signer, or the reverse
//   - ErrDeprecatedVersion: the version is deprecated
//   - ErrUnknownVersion: the version is not registered
package signer
