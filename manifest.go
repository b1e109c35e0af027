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

package jsonnet

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/stdlib"
)

// Format selects how Manifest renders a Value, per spec.md §6.
type Format int

const (
	// JSON renders with a two-space indent, matching the CLI's default
	// output and std.manifestJsonEx's usual indent argument.
	JSON Format = iota
	// YAMLDocument renders a single YAML document.
	YAMLDocument
	// YAMLStream renders v, which must be an array, as a `---`-separated
	// stream of YAML documents, one per element.
	YAMLStream
	// PlainString requires v to be a Value of StringKind and returns its
	// contents unquoted and unescaped, matching the CLI's `--string` flag.
	PlainString
)

// Manifest renders v as text in the given format.
func Manifest(v Value, format Format) (string, error) {
	switch format {
	case JSON:
		return stdlib.ManifestJSON(v, "  ")
	case YAMLDocument:
		return stdlib.ManifestYAML(v)
	case YAMLStream:
		arr, ok := v.(adt.Array)
		if !ok {
			return "", &adt.TypeError{Expected: "array", Got: v.Kind().String()}
		}
		return stdlib.ManifestYAMLStream(arr)
	case PlainString:
		s, ok := v.(adt.String)
		if !ok {
			return "", &adt.TypeError{Expected: "string", Got: v.Kind().String()}
		}
		return s.String(), nil
	}
	return "", &adt.TypeError{Expected: "known manifest format", Got: "unrecognized format"}
}

// EvaluateMulti manifests each string-keyed, visible field of the object v
// independently, as the `--multi` CLI mode does: one file per top-level
// key. Every field's value must itself be manifestable in format.
func EvaluateMulti(v Value, format Format) (map[string]string, error) {
	obj, ok := v.(*adt.Object)
	if !ok {
		return nil, &adt.TypeError{Expected: "object", Got: v.Kind().String()}
	}
	out := make(map[string]string, len(obj.FieldNames(false)))
	for _, name := range obj.FieldNames(false) {
		t, err := obj.Field(name)
		if err != nil {
			return nil, err
		}
		fv, err := t.Force()
		if err != nil {
			return nil, err
		}
		s, err := Manifest(fv, format)
		if err != nil {
			return nil, err
		}
		out[name] = s
	}
	return out, nil
}

// EvaluateStream manifests each element of the array v independently, as
// the CLI's `--yaml-stream` mode does.
func EvaluateStream(v Value, format Format) ([]string, error) {
	arr, ok := v.(adt.Array)
	if !ok {
		return nil, &adt.TypeError{Expected: "array", Got: v.Kind().String()}
	}
	out := make([]string, len(arr))
	for i, t := range arr {
		ev, err := t.Force()
		if err != nil {
			return nil, err
		}
		s, err := Manifest(ev, format)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
