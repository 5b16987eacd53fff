package canonical

import "strconv"

// Role identifies which side of an exchange a set of attributes describes.
type Role string

const (
	// RoleRequest is an outgoing request signed by the client
	RoleRequest Role = "RequestSigner"

	// RoleResponse is an API response validated by the client
	RoleResponse Role = "ResponseSigner"
)

// DefaultMethod is used when a request carries no method.
const DefaultMethod = "GET"

// Query holds request query parameters.
//
// Values are usually string, []string or Params (as produced by ParseQuery),
// but bool, integer, float, nil and map[string]string values are accepted and
// rendered as JSON literals. Key order is irrelevant: keys are sorted when the
// base string is built.
type Query map[string]any

// Param is one entry of a bracketed "key[sub]=value" query parameter.
type Param struct {
	Key   string
	Value string
}

// Params holds bracketed query entries in the order their keys first
// appeared. It renders as a JSON list when the keys are "0".."n-1" in that
// order and as an object otherwise.
type Params []Param

// Set replaces the value stored under key, appending a new entry when the
// key is not present yet.
func (p Params) Set(key, value string) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Append adds value under the next integer key, one past the largest
// integer key present.
func (p Params) Append(value string) Params {
	next := 0
	for _, param := range p {
		if n, ok := intKey(param.Key); ok && n >= next {
			next = n + 1
		}
	}
	return append(p, Param{Key: strconv.Itoa(next), Value: value})
}

func (p Params) isList() bool {
	for i, param := range p {
		if param.Key != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

// intKey reports whether key is the canonical decimal form of an integer.
func intKey(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || strconv.Itoa(n) != key {
		return 0, false
	}
	return n, true
}

// RequestAttributes are the signed elements of an outgoing request.
type RequestAttributes struct {
	// Method is the HTTP method. Empty means GET.
	Method string

	// URLPath is the request path with the API base path already removed
	URLPath string

	// Query contains the decoded query parameters
	Query Query

	// Body is the raw request body
	Body []byte

	// Timestamp is the signing time in unix seconds. Zero is omitted.
	Timestamp int64

	// Version is the signature version, e.g. "v1"
	Version string
}

// Role implements the signer attribute contract.
func (RequestAttributes) Role() Role { return RoleRequest }

// ResponseAttributes are the signed elements of an API response.
type ResponseAttributes struct {
	// Body is the raw response body
	Body []byte

	// Timestamp is the timestamp of the request this response answers
	Timestamp int64

	// Version is the signature version, e.g. "v1"
	Version string
}

// Role implements the signer attribute contract.
func (ResponseAttributes) Role() Role { return RoleResponse }
