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

package canonical

import (
	"net/url"
	"strings"
)

// URLEncode form-encodes s: every byte outside [A-Za-z0-9_.-] becomes %XX
// (uppercase hex) and spaces become "+".
//
// This differs from url.QueryEscape only in "~", which the protocol encodes.
func URLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "~", "%7E")
}

// RawURLEncode encodes s following RFC 3986: every byte outside
// [A-Za-z0-9_.~-] becomes %XX and spaces become "%20".
func RawURLEncode(s string) string {
	// QueryEscape turns a literal "+" into %2B, so every remaining "+" is a space
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// PercentDecode decodes "+" as a space and "%XX" as the byte XX.
//
// Malformed escapes are kept verbatim instead of failing, so any input
// yields a result.
func PercentDecode(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
