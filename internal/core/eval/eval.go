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

// Package eval implements the tree-walking evaluator: the component that
// turns an ast.Expr plus an adt.Scope into an adt.Value. It owns no state
// of its own beyond the active call-stack and recursion depth; the
// long-lived state (import cache, ext vars, native callbacks) belongs to
// the caller-supplied Importer/Runtime.
package eval

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// Importer resolves and evaluates `import`/`importstr`/`importbin`
// expressions. The evaluator core treats it as an opaque collaborator per
// spec.md §4.4; internal/core/runtime supplies the concrete
// process-scoped cache and file-resolution implementation.
type Importer interface {
	Import(fromFile, path string) (adt.Value, error)
	ImportString(fromFile, path string) (adt.Value, error)
	ImportBinary(fromFile, path string) (adt.Value, error)
}

// Canceller is polled at every function call and intrinsic invocation;
// returning a non-nil error aborts evaluation with errors.Cancelled.
type Canceller func() error

// Evaluator walks the AST. Construct one per evaluation (it is not safe
// for concurrent use, matching the single-threaded-per-evaluation model
// of spec.md §5).
type Evaluator struct {
	Importer Importer
	Cancel   Canceller
	MaxStack int

	// CurrentFile is the display name of the file currently being
	// evaluated, used to resolve relative import paths and to answer
	// std.thisFile.
	CurrentFile string

	// StringFormat backs the `%` operator's string-LHS case (printf-style
	// substitution, the same as std.format). It is set once the stdlib
	// root object exists, since the substitution grammar lives in the
	// internal/stdlib package and eval cannot import it without a cycle.
	StringFormat func(format string, arg Value) (Value, error)

	depth int
	stack []errors.Frame
}

// Value is a re-export of adt.Value for StringFormat's signature, so
// callers outside this package don't need a second import just to name
// the hook's type.
type Value = adt.Value

// NewEvaluator constructs an Evaluator. maxStack<=0 uses a generous
// default matching spec.md §5's "tens of thousands of frames".
func NewEvaluator(importer Importer, cancel Canceller, maxStack int) *Evaluator {
	if maxStack <= 0 {
		maxStack = 20000
	}
	return &Evaluator{Importer: importer, Cancel: cancel, MaxStack: maxStack}
}

// Forcer returns a Forcer bound to this evaluator's Eval method, for
// handing to adt.NewObject/adt.NewThunk constructors.
func (e *Evaluator) Forcer() adt.Forcer {
	return func(expr ast.Expr, scope *adt.Scope) (adt.Value, error) { return e.Eval(expr, scope) }
}

// Eval evaluates expr under scope, returning its Value. Expressions in
// tail position (the body of an `if`/`local`/`assert`, or the body of a
// function reached via direct call) are handled by looping within this
// same call rather than recursing, so a chain of tail calls does not grow
// the host call stack (spec.md §4.1's tail-call-handling requirement).
func (e *Evaluator) Eval(expr ast.Expr, scope *adt.Scope) (adt.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.MaxStack {
		return nil, errors.New(errors.StackOverflow, expr.Pos(), e.snapshotStack(), "max stack size exceeded")
	}

	for {
		if e.Cancel != nil {
			if err := e.Cancel(); err != nil {
				return nil, errors.New(errors.Cancelled, expr.Pos(), e.snapshotStack(), "%s", err.Error())
			}
		}

		switch n := expr.(type) {
		case *ast.Null:
			return adt.NullValue, nil
		case *ast.Bool:
			return adt.Bool(n.Value), nil
		case *ast.Number:
			return adt.Number(n.Value), nil
		case *ast.String:
			return adt.NewString(n.Value), nil

		case *ast.Self:
			v, ok := scope.Self()
			if !ok {
				return nil, errors.New(errors.InvalidContext, n.Pos(), e.snapshotStack(), "self used outside an object")
			}
			return v, nil
		case *ast.Dollar:
			v, ok := scope.Dollar()
			if !ok {
				return nil, errors.New(errors.InvalidContext, n.Pos(), e.snapshotStack(), "$ used outside an object")
			}
			return v, nil

		case *ast.Var:
			t, ok := scope.Lookup(n.Name)
			if !ok {
				return nil, errors.New(errors.UnknownVariable, n.Pos(), e.snapshotStack(), "unknown variable: %s", n.Name)
			}
			v, err := t.Force()
			if err != nil {
				return nil, e.wrap(n.Pos(), err)
			}
			return v, nil

		case *ast.Binary:
			return e.evalBinary(n, scope)
		case *ast.Unary:
			return e.evalUnary(n, scope)

		case *ast.Array:
			return e.evalArray(n, scope)
		case *ast.ArrayComp:
			return e.evalArrayComp(n, scope)
		case *ast.Object:
			return e.evalObject(n, scope)
		case *ast.ObjectComp:
			return e.evalObjectComp(n, scope)

		case *ast.Index:
			return e.evalIndex(n, scope)
		case *ast.Slice:
			return e.evalSlice(n, scope)

		case *ast.Function:
			return &adt.Function{Params: n.Params, Body: n.Body, Scope: scope}, nil

		case *ast.Call:
			next, nextScope, result, done, pop, err := e.evalCallStep(n, scope)
			if err != nil {
				return nil, err
			}
			if done {
				return result, nil
			}
			if pop != nil {
				defer pop()
			}
			expr, scope = next, nextScope
			continue

		case *ast.Local:
			scope = e.bindLocals(n.Binds, scope)
			expr = n.Body
			continue

		case *ast.If:
			condV, err := e.Eval(n.Cond, scope)
			if err != nil {
				return nil, err
			}
			cond, ok := condV.(adt.Bool)
			if !ok {
				return nil, e.wrap(n.Cond.Pos(), &adt.TypeError{Expected: "boolean", Got: condV.Kind().String()})
			}
			if bool(cond) {
				expr = n.Then
				continue
			}
			if n.Else == nil {
				return adt.NullValue, nil
			}
			expr = n.Else
			continue

		case *ast.Assert:
			if err := e.runAssert(n, scope); err != nil {
				return nil, err
			}
			expr = n.Rest
			continue

		case *ast.Error:
			msgV, err := e.Eval(n.Expr, scope)
			if err != nil {
				return nil, err
			}
			msg, ok := msgV.(adt.String)
			if !ok {
				return nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "string", Got: msgV.Kind().String()})
			}
			return nil, errors.New(errors.UserError, n.Pos(), e.snapshotStack(), "%s", msg.String())

		case *ast.Import:
			return e.evalImport(n, scope)

		default:
			return nil, errors.New(errors.TypeMismatch, expr.Pos(), e.snapshotStack(), "unhandled expression %T", expr)
		}
	}
}

func (e *Evaluator) runAssert(n *ast.Assert, scope *adt.Scope) error {
	condV, err := e.Eval(n.Cond, scope)
	if err != nil {
		return err
	}
	cond, ok := condV.(adt.Bool)
	if !ok {
		return e.wrap(n.Cond.Pos(), &adt.TypeError{Expected: "boolean", Got: condV.Kind().String()})
	}
	if bool(cond) {
		return nil
	}
	msg := "Assertion failed"
	if n.Msg != nil {
		msgV, err := e.Eval(n.Msg, scope)
		if err != nil {
			return err
		}
		if s, ok := msgV.(adt.String); ok {
			msg = s.String()
		}
	}
	return errors.New(errors.AssertionFailed, n.Pos(), e.snapshotStack(), "%s", msg)
}

// bindLocals extends scope with a `local` clause's (possibly mutually
// recursive) bindings.
func (e *Evaluator) bindLocals(binds []ast.LocalBind, scope *adt.Scope) *adt.Scope {
	m := make(map[ast.Identifier]*adt.Thunk, len(binds))
	var child *adt.Scope
	for _, b := range binds {
		body := b.Body
		m[b.Name] = adt.NewThunk(body, nil, func(expr ast.Expr, _ *adt.Scope) (adt.Value, error) {
			return e.Eval(expr, child)
		})
	}
	child = scope.WithBinds(m)
	return child
}

// wrap classifies a raw error produced by the adt package (or a sentinel
// like adt.ErrCycle/adt.ErrDivByZero) into a positioned errors.Error,
// attaching the live call stack. Errors already wrapped pass through
// unchanged.
func (e *Evaluator) wrap(pos token.Pos, err error) error {
	if ee, ok := err.(errors.Error); ok {
		return ee
	}
	return errors.New(classify(err), pos, e.snapshotStack(), "%s", err.Error())
}

func classify(err error) errors.Code {
	switch err.(type) {
	case *adt.FieldError:
		return errors.NoSuchField
	case *adt.TypeError:
		return errors.TypeMismatch
	case *adt.AssertError:
		return errors.AssertionFailed
	}
	switch err {
	case adt.ErrCycle:
		return errors.InfiniteRecursion
	case adt.ErrDivByZero:
		return errors.DivisionByZero
	}
	return errors.TypeMismatch
}

func (e *Evaluator) snapshotStack() []errors.Frame {
	if len(e.stack) == 0 {
		return nil
	}
	cp := make([]errors.Frame, len(e.stack))
	copy(cp, e.stack)
	return cp
}

// pushFrame pushes f and returns a function that pops it; callers defer
// the returned function so the frame remains for the lifetime of the
// enclosing Eval call, including any tail-call iterations it performs.
func (e *Evaluator) pushFrame(f errors.Frame) func() {
	e.stack = append(e.stack, f)
	n := len(e.stack)
	return func() { e.stack = e.stack[:n-1] }
}
