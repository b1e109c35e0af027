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

// Array and object comprehensions share the same clause-expansion logic:
// a `for`/`if` chain turns one scope into a list of leaf scopes, one per
// generated element/field.
package eval

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// expandClauses evaluates a comprehension's for/if chain under scope,
// producing one leaf Scope per surviving combination of loop variables.
func (e *Evaluator) expandClauses(clauses []ast.CompClause, scope *adt.Scope) ([]*adt.Scope, error) {
	scopes := []*adt.Scope{scope}
	for _, c := range clauses {
		var next []*adt.Scope
		switch {
		case c.For != nil:
			for _, sc := range scopes {
				v, err := e.Eval(c.For.Expr, sc)
				if err != nil {
					return nil, err
				}
				arr, ok := v.(adt.Array)
				if !ok {
					return nil, e.wrap(c.For.Expr.Pos(), &adt.TypeError{Expected: "array", Got: v.Kind().String()})
				}
				for _, elem := range arr {
					next = append(next, sc.WithBind(c.For.Var, elem))
				}
			}
		case c.If != nil:
			for _, sc := range scopes {
				v, err := e.Eval(c.If.Cond, sc)
				if err != nil {
					return nil, err
				}
				b, ok := v.(adt.Bool)
				if !ok {
					return nil, e.wrap(c.If.Cond.Pos(), &adt.TypeError{Expected: "boolean", Got: v.Kind().String()})
				}
				if bool(b) {
					next = append(next, sc)
				}
			}
		}
		scopes = next
	}
	return scopes, nil
}

func (e *Evaluator) evalArrayComp(n *ast.ArrayComp, scope *adt.Scope) (adt.Value, error) {
	scopes, err := e.expandClauses(n.Clauses, scope)
	if err != nil {
		return nil, err
	}
	arr := make(adt.Array, len(scopes))
	for i, sc := range scopes {
		sc := sc
		arr[i] = adt.NewThunk(n.Body, nil, func(expr ast.Expr, _ *adt.Scope) (adt.Value, error) {
			return e.Eval(expr, sc)
		})
	}
	return arr, nil
}

func (e *Evaluator) evalObjectComp(n *ast.ObjectComp, scope *adt.Scope) (adt.Value, error) {
	capScope := e.bindLocals(n.Locals, scope)
	scopes, err := e.expandClauses(n.Clauses, capScope)
	if err != nil {
		return nil, err
	}
	layer := adt.NewLayer()
	for _, sc := range scopes {
		name, err := e.fieldName(n.Field, sc)
		if err != nil {
			return nil, err
		}
		if _, dup := layer.Fields[name]; dup {
			return nil, e.wrap(n.Field.Body.Pos(), &adt.TypeError{Expected: "unique field name", Got: "duplicate field " + name})
		}
		layer.Fields[name] = adt.FieldDescriptor{
			Visibility: n.Field.Visibility,
			Additive:   n.Field.Additive,
			Body:       n.Field.Body,
			Scope:      sc,
		}
	}
	return adt.NewObject([]*adt.Layer{layer}, e.Forcer()), nil
}
