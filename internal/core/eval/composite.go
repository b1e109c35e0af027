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

// This file builds the two composite values that have no Go-native
// literal form: arrays (a slice of element thunks) and objects (a single
// fresh Layer wrapped as an Object). Comprehension variants of both live
// in comprehension.go, which shares fieldName with this file.
package eval

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

func (e *Evaluator) evalArray(n *ast.Array, scope *adt.Scope) (adt.Value, error) {
	arr := make(adt.Array, len(n.Elements))
	for i, elem := range n.Elements {
		elem := elem
		arr[i] = adt.NewThunk(elem, nil, func(expr ast.Expr, _ *adt.Scope) (adt.Value, error) {
			return e.Eval(expr, scope)
		})
	}
	return arr, nil
}

func (e *Evaluator) evalObject(n *ast.Object, scope *adt.Scope) (adt.Value, error) {
	capScope := e.bindLocals(n.Locals, scope)
	layer := adt.NewLayer()
	for _, f := range n.Fields {
		name, err := e.fieldName(f, capScope)
		if err != nil {
			return nil, err
		}
		if _, dup := layer.Fields[name]; dup {
			return nil, e.wrap(f.Body.Pos(), &adt.TypeError{Expected: "unique field name", Got: "duplicate field " + name})
		}
		layer.Fields[name] = adt.FieldDescriptor{
			Visibility: f.Visibility,
			Additive:   f.Additive,
			Body:       f.Body,
			Scope:      capScope,
		}
	}
	for _, a := range n.Asserts {
		layer.Asserts = append(layer.Asserts, adt.AssertDescriptor{Cond: a.Cond, Msg: a.Msg, Scope: capScope})
	}
	return adt.NewObject([]*adt.Layer{layer}, e.Forcer()), nil
}

// fieldName resolves a field's name: a plain literal key is read directly
// (no need to evaluate an *ast.String body); a computed `[e]:` key is
// evaluated under scope and must produce a string.
func (e *Evaluator) fieldName(f ast.Field, scope *adt.Scope) (string, error) {
	if !f.NameIsExpr {
		s, ok := f.Name.(*ast.String)
		if !ok {
			return "", e.wrap(f.Name.Pos(), &adt.TypeError{Expected: "string literal field name", Got: "non-string"})
		}
		return s.Value, nil
	}
	v, err := e.Eval(f.Name, scope)
	if err != nil {
		return "", err
	}
	s, ok := v.(adt.String)
	if !ok {
		return "", e.wrap(f.Name.Pos(), &adt.TypeError{Expected: "string", Got: v.Kind().String()})
	}
	return s.String(), nil
}
