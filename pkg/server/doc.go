// Package server provides HTTP middleware that verifies Inbenta signed
// requests and signs the responses.
//
// # Basic Usage
//
//	middleware := server.NewSignatureAuthMiddleware([]byte(signatureKey),
//	    verifier.WithBasePath("/prod"),
//	    verifier.WithMaxSkew(5*time.Minute),
//	)
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    verification, _ := server.GetVerificationFromContext(r.Context())
//	    fmt.Fprintf(w, `{"version":%q}`, verification.Version)
//	})
//
//	http.Handle("/v1/", middleware.Wrap(handler))
//
// # How It Works
//
// For each request the middleware:
//
//  1. Skips verification for OPTIONS requests (CORS preflight)
//  2. Reads x-inbenta-signature, x-inbenta-signature-version and x-inbenta-timestamp
//  3. Recomputes the request signature with the selected key and compares it
//  4. Stores the verification in the request context
//  5. Buffers the handler's response and signs it with the request's key,
//     version and timestamp
//
// A failed verification answers 401 with a JSON error body and the next
// handler is not called. SetErrorHandler replaces that response.
//
// # Streaming
//
// A handler that calls Flush switches the response to pass-through. The
// buffered part is written at once and the response carries no signature
// headers, since the full body is not known when the headers go out.
//
// # Optional Verification
//
//	// Requests without any signature header pass through unverified
//	middleware.SetOptional(true)
//
// A request that carries some signature headers is still verified.
package server
