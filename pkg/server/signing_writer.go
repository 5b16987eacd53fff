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

package server

import (
	"bytes"
	"net/http"
)

// signingWriter buffers a response until it can be signed. A Flush from
// the handler switches it to pass-through, leaving the response unsigned.
type signingWriter struct {
	w           http.ResponseWriter
	status      int
	wroteHeader bool
	streaming   bool
	body        bytes.Buffer
}

func newSigningWriter(w http.ResponseWriter) *signingWriter {
	return &signingWriter{w: w, status: http.StatusOK}
}

func (s *signingWriter) Header() http.Header {
	return s.w.Header()
}

func (s *signingWriter) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.wroteHeader = true
	s.status = code
	if s.streaming {
		s.w.WriteHeader(code)
	}
}

func (s *signingWriter) Write(p []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	if s.streaming {
		return s.w.Write(p)
	}
	return s.body.Write(p)
}

func (s *signingWriter) Flush() {
	if !s.streaming {
		s.streaming = true
		s.wroteHeader = true
		s.flushBuffered()
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
}

// flushBuffered writes the buffered status and body to the underlying writer
func (s *signingWriter) flushBuffered() {
	s.w.WriteHeader(s.status)
	if s.body.Len() > 0 {
		_, _ = s.w.Write(s.body.Bytes())
		s.body.Reset()
	}
}
