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

package eval

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
)

// evalIndex implements a[b], a.b, super[b], super.b, and their optional
// (`?.`/`?[]`) forms. Optional suppresses the error of indexing into a
// null target (the common `maybeNull?.field` pattern); it does not
// suppress a genuine no-such-field error on a non-null object.
func (e *Evaluator) evalIndex(n *ast.Index, scope *adt.Scope) (adt.Value, error) {
	var target adt.Value
	if n.Super {
		superV, ok := scope.Super()
		if !ok {
			return nil, errors.New(errors.InvalidContext, n.Pos(), e.snapshotStack(), "super used outside an object")
		}
		target = superV
	} else {
		v, err := e.Eval(n.Target, scope)
		if err != nil {
			return nil, err
		}
		if n.Optional {
			if _, isNull := v.(adt.Null); isNull {
				return adt.NullValue, nil
			}
		}
		target = v
	}

	idxV, err := e.Eval(n.Index, scope)
	if err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case adt.String:
		num, ok := idxV.(adt.Number)
		if !ok {
			return nil, e.wrap(n.Index.Pos(), &adt.TypeError{Expected: "number", Got: idxV.Kind().String()})
		}
		i := int(num)
		if i < 0 || i >= len(t) {
			return nil, errors.New(errors.IndexOutOfRange, n.Pos(), e.snapshotStack(), "string index %d out of range [0,%d)", i, len(t))
		}
		return adt.String{t[i]}, nil

	case adt.Array:
		num, ok := idxV.(adt.Number)
		if !ok {
			return nil, e.wrap(n.Index.Pos(), &adt.TypeError{Expected: "number", Got: idxV.Kind().String()})
		}
		i := int(num)
		if i < 0 || i >= len(t) {
			return nil, errors.New(errors.IndexOutOfRange, n.Pos(), e.snapshotStack(), "array index %d out of range [0,%d)", i, len(t))
		}
		v, err := t[i].Force()
		if err != nil {
			return nil, e.wrap(n.Pos(), err)
		}
		return v, nil

	case *adt.Object:
		key, ok := idxV.(adt.String)
		if !ok {
			return nil, e.wrap(n.Index.Pos(), &adt.TypeError{Expected: "string", Got: idxV.Kind().String()})
		}
		ft, err := t.Field(key.String())
		if err != nil {
			return nil, e.wrap(n.Pos(), err)
		}
		v, err := ft.Force()
		if err != nil {
			return nil, e.wrap(n.Pos(), err)
		}
		return v, nil
	}
	return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "string, array, or object", Got: target.Kind().String()})
}

// evalSlice implements a[begin:end:step] over strings and arrays.
// Negative bounds are rejected (spec.md leaves Python-style negative
// indexing out of scope) and a non-positive step is an error; omitted
// bounds default to the whole sequence with a step of 1.
func (e *Evaluator) evalSlice(n *ast.Slice, scope *adt.Scope) (adt.Value, error) {
	v, err := e.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}

	var (
		str      adt.String
		arr      adt.Array
		length   int
		isString bool
	)
	switch t := v.(type) {
	case adt.String:
		str, length, isString = t, len(t), true
	case adt.Array:
		arr, length = t, len(t)
	default:
		return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "string or array", Got: v.Kind().String()})
	}

	begin, err := e.sliceBound(n.BeginIndex, scope, 0)
	if err != nil {
		return nil, err
	}
	end, err := e.sliceBound(n.EndIndex, scope, length)
	if err != nil {
		return nil, err
	}
	step, err := e.sliceBound(n.Step, scope, 1)
	if err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, errors.New(errors.InvalidKey, n.Pos(), e.snapshotStack(), "slice step must be positive, got %d", step)
	}
	if begin < 0 || end < 0 {
		return nil, errors.New(errors.IndexOutOfRange, n.Pos(), e.snapshotStack(), "negative slice bounds are not supported")
	}
	if end > length {
		end = length
	}
	if begin > end {
		begin = end
	}

	if isString {
		var out adt.String
		for i := begin; i < end; i += step {
			out = append(out, str[i])
		}
		return out, nil
	}
	var out adt.Array
	for i := begin; i < end; i += step {
		out = append(out, arr[i])
	}
	return out, nil
}

func (e *Evaluator) sliceBound(expr ast.Expr, scope *adt.Scope, def int) (int, error) {
	if expr == nil {
		return def, nil
	}
	v, err := e.Eval(expr, scope)
	if err != nil {
		return 0, err
	}
	num, ok := v.(adt.Number)
	if !ok {
		return 0, e.wrap(expr.Pos(), &adt.TypeError{Expected: "number", Got: v.Kind().String()})
	}
	return int(num), nil
}
