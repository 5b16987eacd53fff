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

package signer

import (
	"strings"
	"testing"

	"github.com/sage-x-project/inbenta-signature-go/pkg/canonical"
)

// Benchmark request signing
func BenchmarkSignRequest(b *testing.B) {
	s, err := DefaultRegistry().ResolveRequest(V1)
	if err != nil {
		b.Fatal(err)
	}

	attrs := canonical.RequestAttributes{
		Method:    "POST",
		URLPath:   "v1/foo/bar",
		Query:     canonical.Query{"env": "production", "user_question": "flight offer"},
		Body:      []byte(`{"query":"flight"}`),
		Timestamp: testTimestamp,
	}
	key := []byte(testKey)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Sign(attrs, key)
	}
}

// Benchmark request signing with a large body
func BenchmarkSignRequest_LargeBody(b *testing.B) {
	s, err := DefaultRegistry().ResolveRequest(V1)
	if err != nil {
		b.Fatal(err)
	}

	attrs := canonical.RequestAttributes{
		Method:    "POST",
		URLPath:   "v1/foo/bar",
		Body:      []byte(`{"data":"` + strings.Repeat("x", 10000) + `"}`),
		Timestamp: testTimestamp,
	}
	key := []byte(testKey)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Sign(attrs, key)
	}
}

// Benchmark response signing
func BenchmarkSignResponse(b *testing.B) {
	s, err := DefaultRegistry().ResolveResponse(V1)
	if err != nil {
		b.Fatal(err)
	}

	attrs := canonical.ResponseAttributes{
		Body:      []byte(`{"error":{"message":"Signature provided is not valid","code":403}}`),
		Timestamp: testTimestamp,
	}
	key := []byte(testKey)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Sign(attrs, key)
	}
}

// Benchmark version resolution
func BenchmarkResolve(b *testing.B) {
	r := DefaultRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(RoleRequest, V1)
	}
}
