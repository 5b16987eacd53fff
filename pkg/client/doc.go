// Package client signs requests to Inbenta APIs and validates their
// responses.
//
// A Client owns the signature key, the protocol version and the timestamp
// policy. It turns a request into the three protocol headers:
//
//	x-inbenta-signature:         hex HMAC-SHA256 of the request base string
//	x-inbenta-signature-version: v1
//	x-inbenta-timestamp:         Unix seconds covered by the signature
//
// # Basic Usage
//
//	c, err := client.New("https://api.inbenta.io/prod/v1", []byte(key))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers, err := c.GetHeadersForSignature("/prod/v1/foo/bar?env=production", nil, "GET", 0)
//
// The path of the base URL, /prod/v1 above, is stripped from signed URLs so
// both absolute URLs and API relative paths sign identically.
//
// # Timestamps
//
// A zero timestamp selects the value given with WithTimestamp, or the
// current time when none was given. The timestamp of the last signing call
// is kept and used by ValidateResponseSignature; ValidateResponseSignatureAt
// takes it explicitly and is the one to use when a Client is shared between
// goroutines.
//
//	c, _ := client.New(baseURL, key, client.WithTimestamp(1552647740))
//	sig, _ := c.GenerateRequestSignature("v1/foo/bar", nil, "GET", 0)
//	// sig is stable across runs
//
// # Signing HTTP Requests
//
// Any request type can be signed through the OutgoingRequest interface;
// FromHTTPRequest adapts *http.Request:
//
//	req, _ := http.NewRequest("POST", url, body)
//	err := c.SignRequest(client.FromHTTPRequest(req), 0)
//
// Do, Get and Post sign and send in one step, and with
// WithResponseValidation(true) reject responses whose signature does not
// match with ErrInvalidResponseSignature:
//
//	c, _ := client.New(baseURL, key, client.WithResponseValidation(true))
//	resp, err := c.Get(ctx, baseURL+"/foo/bar")
//
// # Configuration
//
// NewFromConfig builds a Client from config.SignatureConfig, as loaded by
// the config package from config.yaml and INBENTA_* environment variables.
//
// # Error Handling
//
//   - ErrInvalidConfiguration: base URL without host, or empty key
//   - *signer.NotImplementedError: version without signers
//   - signer.ErrDeprecatedVersion: signing with a deprecated version
//   - ErrInvalidResponseSignature: rejected response in Do
//
// A signature that does not match is not an error: validation returns
// false.
package client
