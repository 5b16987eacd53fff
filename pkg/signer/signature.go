package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Signature is a lowercase hex encoded HMAC-SHA256 digest.
type Signature string

// ComputeSignature returns the HMAC-SHA256 of base keyed with key.
func ComputeSignature(base string, key []byte) Signature {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(base))
	return Signature(hex.EncodeToString(mac.Sum(nil)))
}

// Equal compares s with a provided signature in constant time.
func (s Signature) Equal(provided string) bool {
	if s == "" || len(provided) != len(s) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(provided)) == 1
}

func (s Signature) String() string {
	return string(s)
}
