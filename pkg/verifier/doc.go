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


// Package verifier checks Inbenta API signatures on incoming requests.
//
// It is the server side counterpart of the client package: it reads the
// x-inbenta-signature, x-inbenta-signature-version and x-inbenta-timestamp
// headers, rebuilds the request base string with the signer registry and
// compares signatures in constant time.
//
// # Request Verification
//
//	selector := verifier.NewStaticKeySelector(key)
//	v := verifier.NewDefaultVerifier(selector,
//	    verifier.WithBasePath("/prod/v1"),
//	    verifier.WithMaxSkew(5*time.Minute),
//	)
//
//	verification, err := v.VerifyRequest(ctx, req)
//	if err != nil {
//	    http.Error(w, "Unauthorized", http.StatusUnauthorized)
//	    return
//	}
//
// The request body is read for verification and put back, so handlers can
// still consume it.
//
// WithBasePath must match the path of the base URL the clients are
// configured with, because clients strip it before signing.
//
// # Key Selection
//
// The KeySelector chooses the shared key for a request:
//
//   - StaticKeySelector: one key for every caller
//   - HeaderKeySelector: key looked up by the x-inbenta-key API key header
//
//	selector := verifier.NewHeaderKeySelector(map[string][]byte{
//	    "api-key-a": keyA,
//	    "api-key-b": keyB,
//	})
//
// # Response Signing
//
// Responses are signed with the key, version and timestamp of the verified
// request, which is what clients validate against:
//
//	signed, err := v.ResponseHeaders(verification, body)
//	signed.Apply(w.Header())
//
// # Error Handling
//
// Common verification errors:
//
//   - ErrMissingHeaders: one of the three signature headers is absent
//   - ErrInvalidHeaders: the timestamp header is not an integer
//   - ErrTimestampSkew: the timestamp is too far from the current time
//   - ErrUnknownKey: no key is registered for the caller
//   - ErrSignatureMismatch: the signature does not match the request
//   - signer.ErrSignerNotImplemented: the version is unknown
//   - signer.ErrDeprecatedVersion: the version is no longer accepted
//
// # Security Considerations
//
//   - Enable WithMaxSkew to bound the replay window of captured requests
//   - Never log signature keys; base strings are safe to log
//   - Use HTTPS; the signature authenticates but does not encrypt
package verifier
