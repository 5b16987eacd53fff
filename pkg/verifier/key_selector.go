package verifier

import (
	"context"
	"net/http"
)

// KeySelector selects the signature key an incoming request was signed with
type KeySelector interface {
	// SelectKey returns the shared key for req, or an error wrapping
	// ErrUnknownKey when the sender is not known
	SelectKey(ctx context.Context, req *http.Request) ([]byte, error)
}
