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

// Core language-introspection members: type tests, equality, object
// field manipulation, and the handful of functions that read
// host-supplied configuration (extVar, thisFile, trace).
package stdlib

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

// registerLang wires the reserved-intrinsic subset: type/length/equality
// primitives, the Ex-suffixed object introspection intrinsics std.jsonnet's
// objectHas/objectFields/objectValues family wraps, and the handful of
// functions that read host-supplied configuration (extVar, thisFile,
// trace, native). The isXxx predicates and the plain-library object
// helpers (objectHas, get, prune, mergePatch, ...) are defined in
// std.jsonnet over these intrinsics instead.
func (b *builder) registerLang() {
	b.fn("type", []string{"x"}, func(a []adt.Value) (adt.Value, error) {
		return adt.NewString(a[0].Kind().String()), nil
	})
	b.fn("length", []string{"x"}, stdLength)
	b.fn("equals", []string{"a", "b"}, func(a []adt.Value) (adt.Value, error) {
		eq, err := adt.Equal(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return adt.Bool(eq), nil
	})
	b.fn("primitiveEquals", []string{"a", "b"}, func(a []adt.Value) (adt.Value, error) {
		if a[0].Kind() != a[1].Kind() {
			return adt.Bool(false), nil
		}
		switch a[0].Kind() {
		case adt.ArrayKind, adt.ObjectKind:
			return nil, typeError("primitive", a[0])
		}
		eq, err := adt.Equal(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return adt.Bool(eq), nil
	})

	// objectHasEx/objectFieldsEx are the reserved-intrinsic names this
	// evaluator dispatches on directly (§4.3); std.jsonnet builds
	// objectHas/objectHasAll/objectFields/objectFieldsAll/objectValues/
	// objectValuesAll on top of these two.
	b.fn("objectHasEx", []string{"o", "f", "inc_hidden"}, func(a []adt.Value) (adt.Value, error) {
		inc, err := argBool(a, 2)
		if err != nil {
			return nil, err
		}
		return objectHas(a[:2], bool(inc))
	})
	b.fn("objectFieldsEx", []string{"o", "inc_hidden"}, func(a []adt.Value) (adt.Value, error) {
		inc, err := argBool(a, 1)
		if err != nil {
			return nil, err
		}
		return objectFields(a[:1], bool(inc))
	})

	b.fn("thisFile", nil, func(a []adt.Value) (adt.Value, error) {
		return adt.NewString(b.ev.CurrentFile), nil
	})
	b.fn("extVar", []string{"x"}, func(a []adt.Value) (adt.Value, error) {
		name, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		if b.cfg.ExtVar == nil {
			return nil, &adt.TypeError{Expected: "configured ext var", Got: "undefined external variable " + name.String()}
		}
		v, ok := b.cfg.ExtVar(name.String())
		if !ok {
			return nil, &adt.TypeError{Expected: "configured ext var", Got: "undefined external variable " + name.String()}
		}
		return v, nil
	})
	b.fn("trace", []string{"str", "rest"}, func(a []adt.Value) (adt.Value, error) {
		if b.cfg.Trace != nil {
			s, _ := adt.DisplayString(a[0])
			b.cfg.Trace(s, a[1])
		}
		return a[1], nil
	})
	b.fn("md5", []string{"s"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		sum := md5.Sum([]byte(s.String()))
		return adt.NewString(hex.EncodeToString(sum[:])), nil
	})
	b.fn("encodeUTF8", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		bs := []byte(s.String())
		out := make(adt.Array, len(bs))
		for i, byt := range bs {
			out[i] = adt.Resolved(adt.Number(byt))
		}
		return out, nil
	})
	b.fn("decodeUTF8", []string{"arr"}, func(a []adt.Value) (adt.Value, error) {
		arr, err := argArray(a, 0)
		if err != nil {
			return nil, err
		}
		bs := make([]byte, len(arr))
		for i, t := range arr {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			n, ok := v.(adt.Number)
			if !ok {
				return nil, typeError("number", v)
			}
			bs[i] = byte(n)
		}
		return adt.NewString(string(bs)), nil
	})
	b.fn("native", []string{"name"}, func(a []adt.Value) (adt.Value, error) {
		name, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		fn, ok := b.cfg.NativeExt[name.String()]
		if !ok {
			return nil, &adt.TypeError{Expected: "registered native callback", Got: "no native callback named " + name.String()}
		}
		return fn, nil
	})
}

func stdLength(a []adt.Value) (adt.Value, error) {
	switch v := a[0].(type) {
	case adt.String:
		return adt.Number(len(v)), nil
	case adt.Array:
		return adt.Number(len(v)), nil
	case *adt.Object:
		return adt.Number(len(v.FieldNames(false))), nil
	case *adt.Function:
		return adt.Number(len(v.Params)), nil
	}
	return nil, typeError("string, array, object, or function", a[0])
}

func objectHas(a []adt.Value, includeHidden bool) (adt.Value, error) {
	o, err := argObject(a, 0)
	if err != nil {
		return nil, err
	}
	f, err := argString(a, 1)
	if err != nil {
		return nil, err
	}
	return adt.Bool(o.Has(f.String(), includeHidden)), nil
}

func objectFields(a []adt.Value, includeHidden bool) (adt.Value, error) {
	o, err := argObject(a, 0)
	if err != nil {
		return nil, err
	}
	names := o.FieldNames(includeHidden)
	out := make(adt.Array, len(names))
	for i, n := range names {
		out[i] = adt.Resolved(adt.NewString(n))
	}
	return out, nil
}

