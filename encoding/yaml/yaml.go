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

// Package yaml converts between YAML text and evaluated Jsonnet values,
// the same pair of operations std.parseYaml/std.manifestYamlDoc expose
// inside a Jsonnet program.
package yaml

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/stdlib"
)

// Unmarshal parses a single YAML document into a Jsonnet value.
func Unmarshal(data []byte) (adt.Value, error) {
	return stdlib.ParseYAML(string(data))
}

// Marshal renders v as a YAML document, the same rendering
// std.manifestYamlDoc(v) produces.
func Marshal(v adt.Value) (string, error) {
	return stdlib.ManifestYAML(v)
}

// MarshalStream renders docs as a `---`-separated YAML stream, the same
// rendering std.manifestYamlStream(docs) produces.
func MarshalStream(docs adt.Array) (string, error) {
	return stdlib.ManifestYAMLStream(docs)
}
