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

package headers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	// ErrMissingHeader is returned by FromHeader when a signature header is absent
	ErrMissingHeader = errors.New("missing signature header")

	// ErrInvalidTimestamp is returned by FromHeader when the timestamp is not an integer
	ErrInvalidTimestamp = errors.New("invalid signature timestamp")
)

// Signed holds the signature headers of one message.
type Signed struct {
	Signature string
	Version   string
	Timestamp int64
}

// Map returns the headers keyed by their lowercase names.
func (s Signed) Map() map[string]string {
	return map[string]string{
		HeaderSignature.String():        s.Signature,
		HeaderSignatureVersion.String(): s.Version,
		HeaderTimestamp.String():        strconv.FormatInt(s.Timestamp, 10),
	}
}

// Apply sets the headers on h, replacing any previous values.
func (s Signed) Apply(h http.Header) {
	for k, v := range s.Map() {
		h.Set(k, v)
	}
}

// FromHeader reads the signature headers from h. Every header must be
// present and the timestamp must be a base 10 integer.
func FromHeader(h http.Header) (Signed, error) {
	var missing []string
	for _, k := range []HeaderKey{HeaderSignature, HeaderSignatureVersion, HeaderTimestamp} {
		if h.Get(k.String()) == "" {
			missing = append(missing, k.String())
		}
	}
	if len(missing) > 0 {
		return Signed{}, fmt.Errorf("%w: %v", ErrMissingHeader, missing)
	}

	ts, err := strconv.ParseInt(h.Get(HeaderTimestamp.String()), 10, 64)
	if err != nil {
		return Signed{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	return Signed{
		Signature: h.Get(HeaderSignature.String()),
		Version:   h.Get(HeaderSignatureVersion.String()),
		Timestamp: ts,
	}, nil
}
