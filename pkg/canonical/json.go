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
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// EncodeJSON renders v with the default flags of PHP's json_encode: "/" is
// escaped as "\/" and every non-ASCII rune as a lowercase \uXXXX
// escape (UTF-16 surrogate pairs above the BMP). Invalid UTF-8 bytes are
// replaced by U+FFFD.
func EncodeJSON(v any) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, v, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeJSONUnescapedSlashes is EncodeJSON without escaping "/".
func EncodeJSONUnescapedSlashes(v any) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, v, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(b *strings.Builder, v any, escapeSlashes bool) error {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		writeJSONString(b, val, escapeSlashes)
	case []byte:
		writeJSONString(b, string(val), escapeSlashes)
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case int:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		b.WriteString(strconv.FormatInt(val, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(val, 10))
	case float32:
		return writeJSONFloat(b, float64(val))
	case float64:
		return writeJSONFloat(b, val)
	case []string:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, item, escapeSlashes)
		}
		b.WriteByte(']')
	case []any:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item, escapeSlashes); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case Params:
		if val.isList() {
			b.WriteByte('[')
			for i, param := range val {
				if i > 0 {
					b.WriteByte(',')
				}
				writeJSONString(b, param.Value, escapeSlashes)
			}
			b.WriteByte(']')
			return nil
		}
		b.WriteByte('{')
		for i, param := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, param.Key, escapeSlashes)
			b.WriteByte(':')
			writeJSONString(b, param.Value, escapeSlashes)
		}
		b.WriteByte('}')
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k, escapeSlashes)
			b.WriteByte(':')
			writeJSONString(b, val[k], escapeSlashes)
		}
		b.WriteByte('}')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k, escapeSlashes)
			b.WriteByte(':')
			if err := writeJSON(b, val[k], escapeSlashes); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

// writeJSONFloat prints the shortest round-trip representation, keeping a
// ".0" on integral values and switching to exponent form outside 1e-4..1e17.
func writeJSONFloat(b *strings.Builder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("unsupported float value %v", f)
	}

	mantissa, expStr, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return fmt.Errorf("format float %v: %w", f, err)
	}

	if exp < -4 || exp >= 17 {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		b.WriteString(mantissa)
		fmt.Fprintf(b, "e%+d", exp)
		return nil
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	b.WriteString(s)
	return nil
}

func writeJSONString(b *strings.Builder, s string, escapeSlashes bool) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '/':
				if escapeSlashes {
					b.WriteString(`\/`)
				} else {
					b.WriteByte(c)
				}
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				if c < 0x20 {
					writeUnicodeEscape(b, rune(c))
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			writeUnicodeEscape(b, r1)
			writeUnicodeEscape(b, r2)
		} else {
			// invalid bytes decode to utf8.RuneError
			writeUnicodeEscape(b, r)
		}
		i += size
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xF])
	b.WriteByte(hexDigits[(r>>8)&0xF])
	b.WriteByte(hexDigits[(r>>4)&0xF])
	b.WriteByte(hexDigits[r&0xF])
}
