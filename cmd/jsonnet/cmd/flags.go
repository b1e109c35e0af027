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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsonnet-go/jsonnet"
)

// varFlags collects repeated `--ext-str`/`--ext-code`/`--tla-str`/
// `--tla-code` flags into a jsonnet.Var map. isCode marks a `-code`
// flag's values as Jsonnet source rather than literal strings.
type varFlags struct {
	isCode bool
	vars   map[string]jsonnet.Var
}

func newVarFlags(isCode bool) *varFlags {
	return &varFlags{isCode: isCode, vars: map[string]jsonnet.Var{}}
}

// String implements pflag.Value.
func (f *varFlags) String() string { return "" }

// Type implements pflag.Value.
func (f *varFlags) Type() string { return "name=value" }

// Set implements pflag.Value: a bare NAME (no `=`) reads the value from
// the environment variable of the same name, matching the reference CLI's
// `--ext-str NAME` shorthand.
func (f *varFlags) Set(s string) error {
	name, value, hasValue := strings.Cut(s, "=")
	if name == "" {
		return fmt.Errorf("empty variable name in %q", s)
	}
	if !hasValue {
		v, ok := os.LookupEnv(name)
		if !ok {
			return fmt.Errorf("no value given for %q and no environment variable of that name", name)
		}
		value = v
	}
	if f.isCode {
		f.vars[name] = jsonnet.Code(value)
	} else {
		f.vars[name] = jsonnet.Str(value)
	}
	return nil
}

// merge copies every src's entries into dst, in argument order (a later
// src wins on a shared name), for combining `-str` and `-code` variants
// of the same flag family (ext vars, TLAs) into one map.
func merge(dst map[string]jsonnet.Var, srcs ...*varFlags) map[string]jsonnet.Var {
	for _, s := range srcs {
		for k, v := range s.vars {
			dst[k] = v
		}
	}
	return dst
}
