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

package stdlib

import (
	"strings"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

func (b *builder) registerStrings() {
	b.fnD("substr", []ast.Param{req("str"), req("from"), req("len")}, stdSubstr)
	b.fn("startsWith", []string{"a", "b"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return adt.Bool(strings.HasPrefix(string(x), string(y))), nil
	})
	b.fn("endsWith", []string{"a", "b"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return adt.Bool(strings.HasSuffix(string(x), string(y))), nil
	})
	b.fn("stripChars", []string{"str", "chars"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return adt.NewString(strings.Trim(string(x), string(y))), nil
	})
	b.fn("lstripChars", []string{"str", "chars"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return adt.NewString(strings.TrimLeft(string(x), string(y))), nil
	})
	b.fn("rstripChars", []string{"str", "chars"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return adt.NewString(strings.TrimRight(string(x), string(y))), nil
	})
	b.fn("trim", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		return adt.NewString(strings.TrimSpace(string(s))), nil
	})
	b.fn("split", []string{"str", "c"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return splitToArray(strings.Split(string(x), string(y))), nil
	})
	b.fn("splitLimit", []string{"str", "c", "maxsplits"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		n, err := argNumber(a, 2)
		if err != nil {
			return nil, err
		}
		limit := int(n)
		if limit < 0 {
			limit = -1
		} else {
			limit++
		}
		return splitToArray(strings.SplitN(string(x), string(y), limit)), nil
	})
	b.fn("asciiUpper", []string{"str"}, stringMap(strings.ToUpper))
	b.fn("asciiLower", []string{"str"}, stringMap(strings.ToLower))
	b.fn("equalsIgnoreCase", []string{"str1", "str2"}, func(a []adt.Value) (adt.Value, error) {
		x, y, err := twoStrings(a)
		if err != nil {
			return nil, err
		}
		return adt.Bool(strings.EqualFold(string(x), string(y))), nil
	})
	b.fn("codepoint", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		if len(s) != 1 {
			return nil, typeError("single-character string", s)
		}
		return adt.Number(s[0]), nil
	})
	b.fn("char", []string{"n"}, func(a []adt.Value) (adt.Value, error) {
		n, err := argNumber(a, 0)
		if err != nil {
			return nil, err
		}
		return adt.String{rune(n)}, nil
	})
	b.fn("strReplace", []string{"str", "from", "to"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		from, err := argString(a, 1)
		if err != nil {
			return nil, err
		}
		to, err := argString(a, 2)
		if err != nil {
			return nil, err
		}
		if len(from) == 0 {
			return nil, typeError("non-empty string", from)
		}
		return adt.NewString(strings.ReplaceAll(string(s), string(from), string(to))), nil
	})
	b.fnD("format", []ast.Param{req("str"), req("vals")}, b.stdFormat)
	b.fn("escapeStringJson", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		return adt.NewString(jsonQuote(string(s))), nil
	})
}

func jsonQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func twoStrings(a []adt.Value) (adt.String, adt.String, error) {
	x, err := argString(a, 0)
	if err != nil {
		return nil, nil, err
	}
	y, err := argString(a, 1)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func stringMap(f func(string) string) func([]adt.Value) (adt.Value, error) {
	return func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		return adt.NewString(f(string(s))), nil
	}
}

func splitToArray(parts []string) adt.Array {
	out := make(adt.Array, len(parts))
	for i, p := range parts {
		out[i] = adt.Resolved(adt.NewString(p))
	}
	return out
}

func stdSubstr(a []adt.Value) (adt.Value, error) {
	s, err := argString(a, 0)
	if err != nil {
		return nil, err
	}
	from, err := argNumber(a, 1)
	if err != nil {
		return nil, err
	}
	length, err := argNumber(a, 2)
	if err != nil {
		return nil, err
	}
	f := int(from)
	l := int(length)
	if f < 0 {
		f = 0
	}
	if f > len(s) {
		f = len(s)
	}
	end := f + l
	if end > len(s) {
		end = len(s)
	}
	if end < f {
		end = f
	}
	return append(adt.String{}, s[f:end]...), nil
}

// stdFormat implements printf-style `%` formatting for std.format and the
// evaluator's `"..." % args` operator (string LHS of `%`, which the
// evaluator delegates here since the substitution grammar belongs with
// the rest of the string intrinsics).
func (b *builder) stdFormat(a []adt.Value) (adt.Value, error) {
	format, err := argString(a, 0)
	if err != nil {
		return nil, err
	}
	var args []adt.Value
	switch v := a[1].(type) {
	case adt.Array:
		args, err = forceAll(v)
		if err != nil {
			return nil, err
		}
	default:
		args = []adt.Value{v}
	}
	out, err := Format(string(format), args)
	if err != nil {
		return nil, err
	}
	return adt.NewString(out), nil
}
