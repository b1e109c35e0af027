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

// Function calls are the one place the evaluator trampolines: a call to a
// non-native function hands the body expression and its scope back to
// Eval's loop instead of recursing, so a chain of tail calls runs in
// constant host stack space.
package eval

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
)

// evalCallStep resolves one *ast.Call. For a native intrinsic it forces
// all arguments and returns the result directly (done=true). For a
// user-defined function it returns the body expression and the call's
// bound scope for Eval's trampoline to continue with (done=false), plus a
// pop function the caller must defer to keep the call's stack frame alive
// for the remaining lifetime of the enclosing Eval invocation.
func (e *Evaluator) evalCallStep(n *ast.Call, scope *adt.Scope) (nextExpr ast.Expr, nextScope *adt.Scope, result adt.Value, done bool, pop func(), err error) {
	fnV, err := e.Eval(n.Fn, scope)
	if err != nil {
		return nil, nil, nil, true, nil, err
	}
	fn, ok := fnV.(*adt.Function)
	if !ok {
		return nil, nil, nil, true, nil, e.wrap(n.Pos(), &adt.TypeError{Expected: "function", Got: fnV.Kind().String()})
	}

	thunks, fnScope, err := e.bindArgs(fn, n.Args, scope, n.TailStrict)
	if err != nil {
		return nil, nil, nil, true, nil, err
	}

	if fn.Native != nil {
		vals := make([]adt.Value, len(thunks))
		for i, t := range thunks {
			v, err := t.Force()
			if err != nil {
				return nil, nil, nil, true, nil, e.wrap(n.Pos(), err)
			}
			vals[i] = v
		}
		res, err := fn.Native(vals)
		if err != nil {
			return nil, nil, nil, true, nil, e.wrap(n.Pos(), err)
		}
		return nil, nil, res, true, nil, nil
	}

	pop = e.pushFrame(errors.Frame{Pos: n.Pos(), Cause: callCause(fn)})
	return fn.Body, fnScope, nil, false, pop, nil
}

// Apply invokes fn with already-evaluated positional argument Values,
// used by standard-library higher-order functions (std.map, std.filter,
// std.sort, ...) that need to call back into a Jsonnet function value
// without going through an *ast.Call node.
func (e *Evaluator) Apply(fn *adt.Function, args []adt.Value) (adt.Value, error) {
	if fn.Native != nil {
		return fn.Native(args)
	}
	if len(args) > len(fn.Params) {
		return nil, &adt.TypeError{Expected: "fewer arguments", Got: "too many arguments"}
	}
	binds := make(map[ast.Identifier]*adt.Thunk, len(fn.Params))
	var fnScope *adt.Scope
	for i, p := range fn.Params {
		if i < len(args) {
			binds[p.Name] = adt.Resolved(args[i])
			continue
		}
		if p.Default == nil {
			return nil, &adt.TypeError{Expected: "argument", Got: "missing parameter " + string(p.Name)}
		}
		def := p.Default
		binds[p.Name] = adt.NewThunk(def, nil, func(expr ast.Expr, _ *adt.Scope) (adt.Value, error) {
			return e.Eval(expr, fnScope)
		})
	}
	fnScope = fn.Scope.WithBinds(binds)
	return e.Eval(fn.Body, fnScope)
}

// ApplyNamed invokes fn with already-evaluated argument Values matched to
// parameters by name, used by the facade to bind top-level arguments:
// top-level functions are called with `--tla-str`/`--tla-code` values
// keyed by parameter name rather than position.
func (e *Evaluator) ApplyNamed(fn *adt.Function, named map[string]adt.Value) (adt.Value, error) {
	if fn.Native != nil {
		args := make([]adt.Value, len(fn.Params))
		for i, p := range fn.Params {
			v, ok := named[string(p.Name)]
			if !ok {
				return nil, &adt.TypeError{Expected: "argument", Got: "missing parameter " + string(p.Name)}
			}
			args[i] = v
		}
		return fn.Native(args)
	}
	binds := make(map[ast.Identifier]*adt.Thunk, len(fn.Params))
	var fnScope *adt.Scope
	for _, p := range fn.Params {
		if v, ok := named[string(p.Name)]; ok {
			binds[p.Name] = adt.Resolved(v)
			continue
		}
		if p.Default == nil {
			return nil, &adt.TypeError{Expected: "argument", Got: "missing parameter " + string(p.Name)}
		}
		def := p.Default
		binds[p.Name] = adt.NewThunk(def, nil, func(expr ast.Expr, _ *adt.Scope) (adt.Value, error) {
			return e.Eval(expr, fnScope)
		})
	}
	fnScope = fn.Scope.WithBinds(binds)
	return e.Eval(fn.Body, fnScope)
}

func callCause(fn *adt.Function) string {
	if fn.Name != "" {
		return "function " + fn.Name
	}
	return "function call"
}

// bindArgs matches a call's positional and named arguments against a
// function's parameter list, producing one Thunk per parameter (in
// parameter order) and the Scope a non-native body should evaluate in.
// Default-value expressions are themselves Thunks closed over that same
// scope, so a default may reference an earlier parameter, including
// another defaulted one.
func (e *Evaluator) bindArgs(fn *adt.Function, args []ast.Arg, callerScope *adt.Scope, tailStrict bool) ([]*adt.Thunk, *adt.Scope, error) {
	var positional []ast.Arg
	named := map[ast.Identifier]ast.Arg{}
	for _, a := range args {
		if a.Name == "" {
			positional = append(positional, a)
			continue
		}
		if _, dup := named[a.Name]; dup {
			return nil, nil, &adt.TypeError{Expected: "single value per argument", Got: "duplicate argument " + string(a.Name)}
		}
		named[a.Name] = a
	}
	if len(positional) > len(fn.Params) {
		return nil, nil, &adt.TypeError{Expected: "fewer positional arguments", Got: "too many arguments"}
	}

	paramIndex := make(map[ast.Identifier]int, len(fn.Params))
	for i, p := range fn.Params {
		paramIndex[p.Name] = i
	}
	for name := range named {
		idx, ok := paramIndex[name]
		if !ok {
			return nil, nil, &adt.TypeError{Expected: "known parameter name", Got: "no parameter named " + string(name)}
		}
		if idx < len(positional) {
			return nil, nil, &adt.TypeError{Expected: "one value per parameter", Got: "multiple values for parameter " + string(name)}
		}
	}

	thunks := make([]*adt.Thunk, len(fn.Params))
	var fnScope *adt.Scope
	for i, p := range fn.Params {
		switch {
		case i < len(positional):
			t, err := e.argThunk(positional[i].Expr, callerScope, tailStrict)
			if err != nil {
				return nil, nil, err
			}
			thunks[i] = t
		default:
			if a, ok := named[p.Name]; ok {
				t, err := e.argThunk(a.Expr, callerScope, tailStrict)
				if err != nil {
					return nil, nil, err
				}
				thunks[i] = t
				continue
			}
			if p.Default == nil {
				return nil, nil, &adt.TypeError{Expected: "argument for required parameter", Got: "missing parameter " + string(p.Name)}
			}
			def := p.Default
			thunks[i] = adt.NewThunk(def, nil, func(expr ast.Expr, _ *adt.Scope) (adt.Value, error) {
				return e.Eval(expr, fnScope)
			})
		}
	}

	binds := make(map[ast.Identifier]*adt.Thunk, len(fn.Params))
	for i, p := range fn.Params {
		binds[p.Name] = thunks[i]
	}
	base := fn.Scope
	if base == nil {
		// Native functions carry no closure scope; their defaults are
		// literals, so an empty root scope is enough to evaluate them.
		base = adt.NewRootScope()
	}
	fnScope = base.WithBinds(binds)
	return thunks, fnScope, nil
}

// argThunk wraps an argument expression lazily, or forces it immediately
// when the call is tailstrict.
func (e *Evaluator) argThunk(expr ast.Expr, callerScope *adt.Scope, tailStrict bool) (*adt.Thunk, error) {
	if tailStrict {
		v, err := e.Eval(expr, callerScope)
		if err != nil {
			return nil, err
		}
		return adt.Resolved(v), nil
	}
	return adt.NewThunk(expr, nil, func(ex ast.Expr, _ *adt.Scope) (adt.Value, error) {
		return e.Eval(ex, callerScope)
	}), nil
}
