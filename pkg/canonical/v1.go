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
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BuildRequestV1 builds the v1 request base string.
//
// Elements that canonicalize to an empty string are dropped, so the result
// never contains empty positions or doubled separators.
func BuildRequestV1(attrs RequestAttributes) (string, error) {
	method := attrs.Method
	if method == "" {
		method = DefaultMethod
	}

	query, err := buildQueryV1(attrs.Query)
	if err != nil {
		return "", err
	}

	var timestamp string
	if attrs.Timestamp != 0 {
		timestamp = strconv.FormatInt(attrs.Timestamp, 10)
	}

	return joinNonEmpty(
		method,
		URLEncode(strings.Trim(attrs.URLPath, " /")),
		query,
		URLEncode(string(attrs.Body)),
		timestamp,
		attrs.Version,
	), nil
}

// BuildResponseV1 builds the v1 response base string. The timestamp is always
// present, including when it is zero.
func BuildResponseV1(attrs ResponseAttributes) (string, error) {
	body, err := EncodeJSON(string(attrs.Body))
	if err != nil {
		return "", fmt.Errorf("encode response body: %w", err)
	}

	return strings.Join([]string{
		attrs.Version,
		strconv.FormatInt(attrs.Timestamp, 10),
		URLEncode(body),
	}, "&"), nil
}

func buildQueryV1(query Query) (string, error) {
	if len(query) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value, err := EncodeJSONUnescapedSlashes(query[key])
		if err != nil {
			return "", fmt.Errorf("encode query parameter %q: %w", key, err)
		}
		pairs = append(pairs, key+"="+PercentDecode(value))
	}
	return RawURLEncode(strings.Join(pairs, "&")), nil
}

func joinNonEmpty(elements ...string) string {
	kept := elements[:0]
	for _, e := range elements {
		if e != "" {
			kept = append(kept, e)
		}
	}
	return strings.Join(kept, "&")
}
