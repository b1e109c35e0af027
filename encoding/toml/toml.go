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

// Package toml converts between TOML text and evaluated Jsonnet values,
// the same operation std.manifestToml exposes inside a Jsonnet program.
//
// WARNING: THIS PACKAGE IS EXPERIMENTAL. ITS API MAY CHANGE AT ANY TIME.
package toml

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/stdlib"
)

// Marshal renders v as TOML, the same rendering std.manifestToml(v)
// produces. v must be an object at the top level; TOML has no notion
// of a bare scalar or array document.
func Marshal(v adt.Value) (string, error) {
	return stdlib.ManifestTOML(v)
}

// Unmarshal parses TOML-encoded data into a Jsonnet value.
func Unmarshal(data []byte) (adt.Value, error) {
	var nv map[string]any
	if err := toml.Unmarshal(data, &nv); err != nil {
		return nil, err
	}
	return stdlib.ValueFromNative(nv)
}
