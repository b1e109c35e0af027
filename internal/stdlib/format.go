// Copyright 2026 The Jsonnet-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Format implements the subset of printf conversions the reference
// implementation's std.format/`%` operator supports: d, i, u, o, x, X, e,
// E, f, F, g, G, c, s, r, %, with the usual `-`/`0`/`+`/` ` flags and
// width/precision (including `*`).
package stdlib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

// Format substitutes args into format per the rules above.
func Format(format string, args []adt.Value) (string, error) {
	var out strings.Builder
	next := 0
	take := func() (adt.Value, error) {
		if next >= len(args) {
			return nil, fmt.Errorf("format: not enough arguments for %q", format)
		}
		v := args[next]
		next++
		return v, nil
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(format) {
			return "", fmt.Errorf("format: trailing %%")
		}
		if format[i] == '%' {
			out.WriteByte('%')
			continue
		}

		start := i
		for i < len(format) && strings.ContainsRune("-+ 0#", rune(format[i])) {
			i++
		}
		width := ""
		if i < len(format) && format[i] == '*' {
			wv, err := take()
			if err != nil {
				return "", err
			}
			n, ok := wv.(adt.Number)
			if !ok {
				return "", typeError("number", wv)
			}
			width = strconv.Itoa(int(n))
			i++
		} else {
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			width = format[start+countFlags(format[start:i]) : i]
		}
		prec := ""
		if i < len(format) && format[i] == '.' {
			i++
			if i < len(format) && format[i] == '*' {
				pv, err := take()
				if err != nil {
					return "", err
				}
				n, ok := pv.(adt.Number)
				if !ok {
					return "", typeError("number", pv)
				}
				prec = "." + strconv.Itoa(int(n))
				i++
			} else {
				ps := i
				for i < len(format) && format[i] >= '0' && format[i] <= '9' {
					i++
				}
				prec = "." + format[ps:i]
			}
		}
		if i >= len(format) {
			return "", fmt.Errorf("format: unterminated conversion")
		}
		verb := format[i]
		flags := format[start : start+countFlags(format[start:])]
		spec := "%" + flags + width + prec

		v, err := take()
		if err != nil {
			return "", err
		}

		switch verb {
		case 'd', 'i', 'u':
			n, ok := v.(adt.Number)
			if !ok {
				return "", typeError("number", v)
			}
			fmt.Fprintf(&out, spec+"d", int64(n))
		case 'o':
			n, ok := v.(adt.Number)
			if !ok {
				return "", typeError("number", v)
			}
			fmt.Fprintf(&out, spec+"o", int64(n))
		case 'x':
			n, ok := v.(adt.Number)
			if !ok {
				return "", typeError("number", v)
			}
			fmt.Fprintf(&out, spec+"x", int64(n))
		case 'X':
			n, ok := v.(adt.Number)
			if !ok {
				return "", typeError("number", v)
			}
			fmt.Fprintf(&out, spec+"X", int64(n))
		case 'e', 'E', 'f', 'F', 'g', 'G':
			n, ok := v.(adt.Number)
			if !ok {
				return "", typeError("number", v)
			}
			fmt.Fprintf(&out, spec+string(verb), float64(n))
		case 'c':
			switch cv := v.(type) {
			case adt.Number:
				out.WriteRune(rune(int64(cv)))
			case adt.String:
				out.WriteString(string(cv))
			default:
				return "", typeError("number or string", v)
			}
		case 's':
			s, err := adt.DisplayString(v)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, spec+"s", s)
		case 'r':
			s, err := reprString(v)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, spec+"s", s)
		default:
			return "", fmt.Errorf("format: unsupported conversion %%%c", verb)
		}
	}
	return out.String(), nil
}

func countFlags(s string) int {
	n := 0
	for n < len(s) && strings.ContainsRune("-+ 0#", rune(s[n])) {
		n++
	}
	return n
}

// reprString renders v as JSON, matching %r/std.toString's quoted form for
// non-top-level strings.
func reprString(v adt.Value) (string, error) {
	if s, ok := v.(adt.String); ok {
		return jsonQuote(string(s)), nil
	}
	return adt.DisplayString(v)
}
