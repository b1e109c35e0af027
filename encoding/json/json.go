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

// Package json converts between JSON text and evaluated Jsonnet values.
// Manifesting a jsonnet.Value to JSON and parsing JSON into one are the
// same operations std.manifestJsonEx/std.parseJson expose inside a
// Jsonnet program; this package gives host Go code the same pair.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/stdlib"
)

// Valid reports whether data is a valid JSON encoding.
func Valid(b []byte) bool {
	return json.Valid(b)
}

// Unmarshal parses JSON-encoded data into a Jsonnet value.
func Unmarshal(data []byte) (adt.Value, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("json: invalid JSON")
	}
	return stdlib.ParseJSON(string(data))
}

// Marshal renders v as indented JSON, the same rendering
// std.manifestJsonEx(v, indent) produces.
func Marshal(v adt.Value, indent string) (string, error) {
	return stdlib.ManifestJSON(v, indent)
}
