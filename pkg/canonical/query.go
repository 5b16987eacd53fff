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
	"strconv"
	"strings"
)

// ParseQuery decodes a raw query string into a Query.
//
// Pairs are separated by "&" and decoded with PercentDecode, so a space
// written as " ", "+" or "%20" yields the same value. The last value of a
// repeated key wins; "key[]=a&key[]=b" builds the list ["a","b"] under "key"
// and "key[sub]=v" builds Params under "key", keeping the order in which
// sub-keys first appear. Spaces and dots in key names become underscores, as
// does an opening bracket that is never closed.
func ParseQuery(rawQuery string) Query {
	query := Query{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key := PercentDecode(rawKey)
		value := PercentDecode(rawValue)

		name, sub, bracketed := splitBracketKey(key)
		if name == "" {
			continue
		}

		switch {
		case !bracketed:
			query[name] = value
		case sub == "":
			switch existing := query[name].(type) {
			case Params:
				query[name] = existing.Append(value)
			case []string:
				query[name] = append(existing, value)
			default:
				query[name] = []string{value}
			}
		default:
			var params Params
			switch existing := query[name].(type) {
			case Params:
				params = existing
			case []string:
				for i, v := range existing {
					params = append(params, Param{Key: strconv.Itoa(i), Value: v})
				}
			}
			query[name] = params.Set(sub, value)
		}
	}
	return query
}

// splitBracketKey splits "name[sub]" into a normalized name and sub. An
// opening bracket without a closing one becomes "_" and the key is treated
// as a plain name.
func splitBracketKey(key string) (name, sub string, bracketed bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return normalizeKeyName(key), "", false
	}
	end := strings.IndexByte(key[open:], ']')
	if end < 0 {
		return normalizeKeyName(key[:open]) + "_" + key[open+1:], "", false
	}
	return normalizeKeyName(key[:open]), key[open+1 : open+end], true
}

func normalizeKeyName(name string) string {
	name = strings.TrimLeft(name, " ")
	return strings.NewReplacer(" ", "_", ".", "_").Replace(name)
}

// SplitURL returns the raw (still encoded) path and query of a URL.
//
// Absolute URLs ("https://host/path?q") and relative references
// ("v1/foo?q") are both accepted. The fragment is discarded.
func SplitURL(rawURL string) (path, rawQuery string) {
	rawURL, _, _ = strings.Cut(rawURL, "#")
	rest, rawQuery, _ := strings.Cut(rawURL, "?")

	if strings.HasPrefix(rest, "//") {
		return stripAuthority(rest[2:]), rawQuery
	}
	if i := strings.Index(rest, "://"); i > 0 && !strings.Contains(rest[:i], "/") {
		return stripAuthority(rest[i+3:]), rawQuery
	}
	return rest, rawQuery
}

func stripAuthority(s string) string {
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return ""
	}
	return s[slash:]
}
