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

package client

import (
	"bytes"
	"io"
	"net/http"
)

// OutgoingRequest is the request side collaborator signed by SignRequest.
type OutgoingRequest interface {
	Method() string
	// URLPath returns the escaped path of the request URL
	URLPath() string
	RawQuery() string
	Body() ([]byte, error)
	SetHeader(key, value string)
}

// IncomingResponse is the response side collaborator checked by
// ValidateResponse.
type IncomingResponse interface {
	Header(key string) string
	Body() ([]byte, error)
}

type httpRequest struct {
	req *http.Request
}

// FromHTTPRequest adapts req to OutgoingRequest. Reading the body leaves it
// in place for the transport.
func FromHTTPRequest(req *http.Request) OutgoingRequest {
	return &httpRequest{req: req}
}

func (r *httpRequest) Method() string {
	return r.req.Method
}

func (r *httpRequest) URLPath() string {
	return r.req.URL.EscapedPath()
}

func (r *httpRequest) RawQuery() string {
	return r.req.URL.RawQuery
}

func (r *httpRequest) Body() ([]byte, error) {
	if r.req.Body == nil || r.req.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.req.Body)
	if err != nil {
		return nil, err
	}
	_ = r.req.Body.Close()

	r.req.Body = io.NopCloser(bytes.NewReader(body))
	r.req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	r.req.ContentLength = int64(len(body))
	return body, nil
}

func (r *httpRequest) SetHeader(key, value string) {
	r.req.Header.Set(key, value)
}

type httpResponse struct {
	resp *http.Response
}

// FromHTTPResponse adapts resp to IncomingResponse. Reading the body leaves
// it in place for the caller.
func FromHTTPResponse(resp *http.Response) IncomingResponse {
	return &httpResponse{resp: resp}
}

func (r *httpResponse) Header(key string) string {
	return r.resp.Header.Get(key)
}

func (r *httpResponse) Body() ([]byte, error) {
	if r.resp.Body == nil || r.resp.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.resp.Body)
	if err != nil {
		return nil, err
	}
	_ = r.resp.Body.Close()

	r.resp.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
