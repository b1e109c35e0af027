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

package adt

import (
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// thunkState tracks where a Thunk is in its lazy-evaluation lifecycle.
type thunkState int

const (
	pending thunkState = iota
	evaluating
	evaluated
)

// Forcer evaluates a Thunk's expression in its captured scope. It is
// supplied by the evaluator package at construction time so that this
// package never needs to import the evaluator (which would be a cycle):
// adt defines the data, eval defines the computation over it.
type Forcer func(expr ast.Expr, scope *Scope) (Value, error)

// Thunk is a suspended computation: an expression plus the scope captured
// when it was created. Forcing is idempotent and memoized; a Thunk already
// in the evaluating state signals reentrant cyclic evaluation.
type Thunk struct {
	expr  ast.Expr
	scope *Scope
	force Forcer

	state thunkState
	value Value
	err   error
}

// NewThunk wraps expr for lazy evaluation under scope. force performs the
// actual tree-walk the first time the thunk is demanded.
func NewThunk(expr ast.Expr, scope *Scope, force Forcer) *Thunk {
	return &Thunk{expr: expr, scope: scope, force: force}
}

// Resolved wraps an already-computed Value as a no-op thunk, used for
// literals and values produced outside normal expression evaluation (e.g.
// std.native call results, parseJson output).
func Resolved(v Value) *Thunk {
	return &Thunk{state: evaluated, value: v}
}

// Expr returns the thunk's unevaluated expression, or nil for an
// already-resolved thunk.
func (t *Thunk) Expr() ast.Expr { return t.expr }

// Force evaluates the thunk if necessary and returns its Value. A second
// Force call returns the cached Value without recomputation. Forcing a
// thunk that is itself mid-evaluation (a cycle) returns a CycleError; the
// caller is expected to convert this into an errors.InfiniteRecursion with
// the offending construct's position.
func (t *Thunk) Force() (Value, error) {
	switch t.state {
	case evaluated:
		return t.value, t.err
	case evaluating:
		return nil, ErrCycle
	}
	t.state = evaluating
	v, err := t.force(t.expr, t.scope)
	if err != nil {
		// On error the thunk resets to pending rather than memoizing the
		// failure, so later demand (e.g. a later test run reusing the
		// same AST under a fresh evaluator) can retry from scratch.
		t.state = pending
		return nil, err
	}
	t.state = evaluated
	t.value = v
	return v, nil
}

// ErrCycle is returned by Force when a thunk is reentered while already
// evaluating. The evaluator wraps it with position/stack information
// before surfacing it to callers.
var ErrCycle = cycleError{}

type cycleError struct{}

func (cycleError) Error() string { return "infinite recursion detected" }
