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

// Jsonnet's regex grammar is PCRE-like, closer to .NET/PCRE semantics
// than Go's RE2 (no backreferences or lookaround in RE2), so this uses
// regexp2 rather than the standard library's regexp.
package stdlib

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

// regexMetaChars are the characters PCRE/.NET regex syntax treats
// specially; regexQuoteMeta backslash-escapes each one so the result
// matches only the literal input string.
const regexMetaChars = `\.+*?()|[]{}^$`

func quoteRegexMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(regexMetaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (b *builder) registerRegex() {
	b.fn("regexMatch", []string{"regex", "string"}, func(a []adt.Value) (adt.Value, error) {
		re, s, err := compileAndString(a)
		if err != nil {
			return nil, err
		}
		m, err := re.MatchString(s)
		if err != nil {
			return nil, err
		}
		return adt.Bool(m), nil
	})
	b.fn("regexSubst", []string{"regex", "src", "replacement"}, func(a []adt.Value) (adt.Value, error) {
		return regexReplace(a, 1)
	})
	b.fn("regexGlobalReplace", []string{"regex", "src", "replacement"}, func(a []adt.Value) (adt.Value, error) {
		return regexReplace(a, -1)
	})
	b.fn("regexQuoteMeta", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		return adt.NewString(quoteRegexMeta(s.String())), nil
	})
}

func compileAndString(a []adt.Value) (*regexp2.Regexp, string, error) {
	pattern, err := argString(a, 0)
	if err != nil {
		return nil, "", err
	}
	s, err := argString(a, 1)
	if err != nil {
		return nil, "", err
	}
	re, err := regexp2.Compile(pattern.String(), regexp2.None)
	if err != nil {
		return nil, "", &adt.TypeError{Expected: "valid regular expression", Got: err.Error()}
	}
	return re, s.String(), nil
}

func regexReplace(a []adt.Value, count int) (adt.Value, error) {
	re, s, err := compileAndString([]adt.Value{a[0], a[1]})
	if err != nil {
		return nil, err
	}
	repl, err := argString(a, 2)
	if err != nil {
		return nil, err
	}
	out, err := re.Replace(s, repl.String(), -1, count)
	if err != nil {
		return nil, err
	}
	return adt.NewString(out), nil
}
