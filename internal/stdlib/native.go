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

// Conversions between adt.Value and plain Go data (map[string]any,
// []any, ...), shared by every encode.go intrinsic that hands a value to
// or receives one from a third-party marshaler (yaml.v3, go-toml/v2).
package stdlib

import (
	"sort"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// ValueToNative is the exported form of toNative, used by the facade to
// hand native_callbacks arguments as plain Go values rather than adt.Value,
// mirroring the way encoding packages receive values for marshaling.
func ValueToNative(v adt.Value) (interface{}, error) {
	return toNative(v)
}

// toNative forces v (recursively) into plain Go values a marshaler can
// walk with reflection: map[string]any, []any, string, float64, bool, nil.
func toNative(v adt.Value) (interface{}, error) {
	switch x := v.(type) {
	case adt.Null:
		return nil, nil
	case adt.Bool:
		return bool(x), nil
	case adt.Number:
		return float64(x), nil
	case adt.String:
		return x.String(), nil
	case adt.Array:
		out := make([]interface{}, len(x))
		for i, t := range x {
			ev, err := t.Force()
			if err != nil {
				return nil, err
			}
			nv, err := toNative(ev)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case *adt.Object:
		names := x.FieldNames(false)
		out := make(map[string]interface{}, len(names))
		for _, name := range names {
			t, err := x.Field(name)
			if err != nil {
				return nil, err
			}
			ev, err := t.Force()
			if err != nil {
				return nil, err
			}
			nv, err := toNative(ev)
			if err != nil {
				return nil, err
			}
			out[name] = nv
		}
		return out, nil
	}
	return nil, typeError("manifestable value", v)
}

// orderedFields is toNative's object case plus the sorted key order
// used to walk it, for formats (INI, XML-JSONML) that build up output
// by iterating fields directly rather than handing off to a marshaler.
func orderedFields(o *adt.Object) ([]string, map[string]adt.Value, error) {
	names := o.FieldNames(false)
	sort.Strings(names)
	vals := make(map[string]adt.Value, len(names))
	for _, name := range names {
		t, err := o.Field(name)
		if err != nil {
			return nil, nil, err
		}
		v, err := t.Force()
		if err != nil {
			return nil, nil, err
		}
		vals[name] = v
	}
	return names, vals, nil
}

// ValueFromNative is the exported form of fromNative, for encoding
// packages (encoding/toml) whose underlying marshaler decodes into plain
// Go values rather than handing this package gjson/yaml.Node trees.
func ValueFromNative(v interface{}) (adt.Value, error) {
	return fromNative(v)
}

// fromNative lifts a plain Go value (as produced by yaml.v3/gjson
// decoding) back into the adt.Value universe.
func fromNative(v interface{}) (adt.Value, error) {
	switch x := v.(type) {
	case nil:
		return adt.NullValue, nil
	case bool:
		return adt.Bool(x), nil
	case int:
		return adt.Number(x), nil
	case int64:
		return adt.Number(x), nil
	case float64:
		return adt.Number(x), nil
	case string:
		return adt.NewString(x), nil
	case []interface{}:
		out := make(adt.Array, len(x))
		for i, e := range x {
			ev, err := fromNative(e)
			if err != nil {
				return nil, err
			}
			out[i] = adt.Resolved(ev)
		}
		return out, nil
	case map[string]interface{}:
		layer := adt.NewLayer()
		for k, e := range x {
			ev, err := fromNative(e)
			if err != nil {
				return nil, err
			}
			layer.Fields[k] = adt.FieldDescriptor{Visibility: ast.VisForced, Native: ev}
		}
		return adt.NewNativeObjectFromLayer(layer), nil
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, typeError("string key", adt.NewString(""))
			}
			m[ks] = e
		}
		return fromNative(m)
	}
	return nil, typeError("JSON/YAML-representable value", adt.NewString(""))
}
