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
)

// evalBinary evaluates a binary expression. && and || short-circuit (the
// right operand is only evaluated when it can affect the result); ?? only
// evaluates its right operand when the left is null.
func (e *Evaluator) evalBinary(n *ast.Binary, scope *adt.Scope) (adt.Value, error) {
	switch n.Op {
	case ast.OpAnd:
		l, err := e.evalBool(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if !l {
			return adt.Bool(false), nil
		}
		r, err := e.evalBool(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return adt.Bool(r), nil
	case ast.OpOr:
		l, err := e.evalBool(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if l {
			return adt.Bool(true), nil
		}
		r, err := e.evalBool(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return adt.Bool(r), nil
	case ast.OpNullCoalesce:
		l, err := e.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if _, isNull := l.(adt.Null); !isNull {
			return l, nil
		}
		return e.Eval(n.Right, scope)
	}

	l, err := e.Eval(n.Left, scope)
	if err != nil {
		return nil, err
	}
	r, err := e.Eval(n.Right, scope)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		v, err := adt.Add(l, r)
		return v, e.wrapOp(n, err)
	case ast.OpSub:
		v, err := adt.Sub(l, r)
		return v, e.wrapOp(n, err)
	case ast.OpMul:
		v, err := adt.Mul(l, r)
		return v, e.wrapOp(n, err)
	case ast.OpDiv:
		v, err := adt.Div(l, r)
		return v, e.wrapOp(n, err)
	case ast.OpMod:
		if ls, ok := l.(adt.String); ok {
			if e.StringFormat == nil {
				return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "configured string formatter", Got: "% on string with no stdlib loaded"})
			}
			v, err := e.StringFormat(ls.String(), r)
			return v, e.wrapOp(n, err)
		}
		v, err := adt.Mod(l, r)
		return v, e.wrapOp(n, err)
	case ast.OpEq:
		eq, err := adt.Equal(l, r)
		if err != nil {
			return nil, e.wrap(n.Pos(), err)
		}
		return adt.Bool(eq), nil
	case ast.OpNe:
		eq, err := adt.Equal(l, r)
		if err != nil {
			return nil, e.wrap(n.Pos(), err)
		}
		return adt.Bool(!eq), nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		c, err := adt.Compare(l, r)
		if err != nil {
			return nil, e.wrap(n.Pos(), err)
		}
		switch n.Op {
		case ast.OpLt:
			return adt.Bool(c < 0), nil
		case ast.OpLe:
			return adt.Bool(c <= 0), nil
		case ast.OpGt:
			return adt.Bool(c > 0), nil
		default:
			return adt.Bool(c >= 0), nil
		}
	case ast.OpIn:
		return e.evalIn(n, l, r)
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		return e.evalBitwise(n, l, r)
	}
	return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "supported operator", Got: n.Op.String()})
}

func (e *Evaluator) evalBool(expr ast.Expr, scope *adt.Scope) (bool, error) {
	v, err := e.Eval(expr, scope)
	if err != nil {
		return false, err
	}
	b, ok := v.(adt.Bool)
	if !ok {
		return false, e.wrap(expr.Pos(), &adt.TypeError{Expected: "boolean", Got: v.Kind().String()})
	}
	return bool(b), nil
}

// evalIn implements `key in object`: object field-membership test (always
// available since this is the only container `in` supports).
func (e *Evaluator) evalIn(n *ast.Binary, l, r adt.Value) (adt.Value, error) {
	key, ok := l.(adt.String)
	if !ok {
		return nil, e.wrap(n.Left.Pos(), &adt.TypeError{Expected: "string", Got: l.Kind().String()})
	}
	obj, ok := r.(*adt.Object)
	if !ok {
		return nil, e.wrap(n.Right.Pos(), &adt.TypeError{Expected: "object", Got: r.Kind().String()})
	}
	return adt.Bool(obj.Has(key.String(), true)), nil
}

func (e *Evaluator) evalBitwise(n *ast.Binary, l, r adt.Value) (adt.Value, error) {
	lv, ok := l.(adt.Number)
	if !ok {
		return nil, e.wrap(n.Left.Pos(), &adt.TypeError{Expected: "number", Got: l.Kind().String()})
	}
	rv, ok := r.(adt.Number)
	if !ok {
		return nil, e.wrap(n.Right.Pos(), &adt.TypeError{Expected: "number", Got: r.Kind().String()})
	}
	li, ri := int64(lv), int64(rv)
	switch n.Op {
	case ast.OpBitAnd:
		return adt.Number(li & ri), nil
	case ast.OpBitOr:
		return adt.Number(li | ri), nil
	case ast.OpBitXor:
		return adt.Number(li ^ ri), nil
	case ast.OpShl:
		return adt.Number(li << uint(ri)), nil
	default: // OpShr
		return adt.Number(li >> uint(ri)), nil
	}
}

func (e *Evaluator) wrapOp(n *ast.Binary, err error) error {
	if err == nil {
		return nil
	}
	return e.wrap(n.Pos(), err)
}

func (e *Evaluator) evalUnary(n *ast.Unary, scope *adt.Scope) (adt.Value, error) {
	v, err := e.Eval(n.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		num, ok := v.(adt.Number)
		if !ok {
			return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "number", Got: v.Kind().String()})
		}
		return -num, nil
	case ast.OpPos:
		if _, ok := v.(adt.Number); !ok {
			return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "number", Got: v.Kind().String()})
		}
		return v, nil
	case ast.OpNot:
		b, ok := v.(adt.Bool)
		if !ok {
			return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "boolean", Got: v.Kind().String()})
		}
		return adt.Bool(!b), nil
	case ast.OpBitNot:
		num, ok := v.(adt.Number)
		if !ok {
			return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "number", Got: v.Kind().String()})
		}
		return adt.Number(^int64(num)), nil
	}
	return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "supported operator", Got: n.Op.String()})
}
