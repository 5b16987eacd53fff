package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
	"github.com/sage-x-project/inbenta-signature-go/pkg/verifier"
)

type contextKey string

const verificationKey contextKey = "inbenta_signature_verification"

// ErrorHandler handles verification errors
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// SignatureAuthMiddleware verifies signed requests and signs the responses
type SignatureAuthMiddleware struct {
	verifier      verifier.RequestVerifier
	errorHandler  ErrorHandler
	optional      bool
	signResponses bool
	logger        *zap.Logger
}

// NewSignatureAuthMiddleware creates middleware for a single shared key
func NewSignatureAuthMiddleware(key []byte, opts ...verifier.Option) *SignatureAuthMiddleware {
	return NewSignatureAuthMiddlewareWithVerifier(
		verifier.NewDefaultVerifier(verifier.NewStaticKeySelector(key), opts...),
	)
}

// NewSignatureAuthMiddlewareWithVerifier creates middleware with a custom verifier
func NewSignatureAuthMiddlewareWithVerifier(v verifier.RequestVerifier) *SignatureAuthMiddleware {
	return &SignatureAuthMiddleware{
		verifier:      v,
		errorHandler:  defaultErrorHandler,
		optional:      false,
		signResponses: true,
		logger:        zap.NewNop(),
	}
}

// SetErrorHandler sets a custom error handler
func (m *SignatureAuthMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetOptional sets whether signature verification is optional
// If true, requests without any signature header are allowed to pass through
func (m *SignatureAuthMiddleware) SetOptional(optional bool) {
	m.optional = optional
}

// SetSignResponses sets whether responses to verified requests are signed
func (m *SignatureAuthMiddleware) SetSignResponses(sign bool) {
	m.signResponses = sign
}

// SetLogger sets the logger
func (m *SignatureAuthMiddleware) SetLogger(logger *zap.Logger) {
	m.logger = logging.OrNop(logger)
}

// Wrap wraps an HTTP handler with signature authentication
func (m *SignatureAuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip verification for OPTIONS requests (CORS preflight)
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if m.optional && !hasSignatureHeaders(r) {
			// Allow request to proceed without verification in context
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		verification, err := m.verifier.VerifyRequest(ctx, r)
		if err != nil {
			m.logger.Warn("rejected request",
				zap.String(logging.SLMethod, r.Method),
				zap.String(logging.SLPath, r.URL.Path),
				zap.String(logging.SLRemoteAddr, r.RemoteAddr),
				zap.Error(err))
			m.errorHandler(w, r, fmt.Errorf("signature verification failed: %w", err))
			return
		}

		// Add verification to context
		r = r.WithContext(context.WithValue(ctx, verificationKey, verification))

		if !m.signResponses {
			next.ServeHTTP(w, r)
			return
		}

		sw := newSigningWriter(w)
		next.ServeHTTP(sw, r)
		if sw.streaming {
			m.logger.Debug("response streamed unsigned", zap.String(logging.SLPath, r.URL.Path))
			return
		}

		signed, err := m.verifier.ResponseHeaders(verification, sw.body.Bytes())
		if err != nil {
			m.logger.Error("failed to sign response", zap.String(logging.SLPath, r.URL.Path), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		signed.Apply(w.Header())
		sw.flushBuffered()
	})
}

// GetVerificationFromContext extracts the verified signature from request context
func GetVerificationFromContext(ctx context.Context) (*verifier.Verification, bool) {
	verification, ok := ctx.Value(verificationKey).(*verifier.Verification)
	return verification, ok
}

func hasSignatureHeaders(r *http.Request) bool {
	for _, k := range []headers.HeaderKey{headers.HeaderSignature, headers.HeaderSignatureVersion, headers.HeaderTimestamp} {
		if r.Header.Get(k.String()) != "" {
			return true
		}
	}
	return false
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// defaultErrorHandler answers 401 with an Inbenta style JSON error
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	message := "Signature provided is not valid"
	if errors.Is(err, verifier.ErrMissingHeaders) {
		message = "Signature headers are missing"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Message: message, Code: http.StatusUnauthorized}})
}
