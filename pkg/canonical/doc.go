// Package canonical builds the deterministic base strings of the Inbenta
// API signature protocol.
//
// A base string is the exact text that is fed to the keyed hash. Both sides
// of a connection derive it independently from the message attributes, so
// every rule here is part of the wire contract: changing a byte changes
// every signature.
//
// # Request Base String (v1)
//
// The request base string joins, with "&", the non-empty elements of:
//
//	method & path & query & body & timestamp & version
//
//   - method: the HTTP method, "GET" when empty
//   - path: the URL path with leading/trailing spaces and slashes trimmed,
//     form-encoded (space as "+", "~" as "%7E")
//   - query: the query parameters sorted by key, rendered as key=<json value>
//     and joined with "&", then RFC 3986 encoded as a single token
//   - body: the raw body, form-encoded as a single token
//   - timestamp: unix seconds, omitted when zero
//   - version: the signature version, e.g. "v1"
//
// Example:
//
//	attrs := canonical.RequestAttributes{
//	    Method:    "GET",
//	    URLPath:   "v1/foo/bar",
//	    Query:     canonical.Query{"env": "production", "date_from": "2019-01-01"},
//	    Timestamp: 1552647740,
//	    Version:   "v1",
//	}
//	base, err := canonical.BuildRequestV1(attrs)
//	// GET&v1%2Ffoo%2Fbar&date_from%3D%222019-01-01%22%26env%3D%22production%22&1552647740&v1
//
// # Response Base String (v1)
//
// The response base string always has three elements:
//
//	version & timestamp & form-encoded(json-string(body))
//
// Unlike the request base string, a zero timestamp is kept as "0".
//
// # Space Normalization
//
// A query value containing a space canonicalizes identically whether the
// URL carried it as a raw space, "+" or "%20". ParseQuery decodes the
// raw query the same way the reference server does, and the JSON-rendered
// value is percent-decoded once more before the whole block is encoded.
//
// # Purity
//
// Every function in this package is a pure function of its arguments. No
// state is kept between calls and all functions are safe for concurrent use.
package canonical
