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
	"github.com/jsonnet-go/jsonnet/internal/core/runtime"
	"github.com/jsonnet-go/jsonnet/internal/stdlib"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// defaultMaxStack is spec.md §6's new_evaluator default.
const defaultMaxStack = 500

// Value is the result of evaluating Jsonnet source: one of Null, Bool,
// Number, String, Array, *Object, or *Function. It is a type alias for
// internal/core/adt.Value, exported so callers outside this module need
// not import an internal package to name the type Evaluate* methods and
// Manifest/EvaluateMulti/EvaluateStream accept and return.
type Value = adt.Value

// Evaluator is a single, pure-function-of-its-inputs Jsonnet evaluation
// context: a parser, a tree-walking evaluator, an import cache, and a
// std object, all constructed once by NewEvaluator and reused for every
// file or snippet evaluated through it (spec.md §6's persisted-state
// note: none beyond this instance itself).
type Evaluator struct {
	rt      *runtime.Runtime
	tlaVars map[string]Var
}

// NewEvaluator constructs an Evaluator from cfg.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	maxStack := cfg.MaxStack
	if maxStack <= 0 {
		maxStack = defaultMaxStack
	}

	nativeExt := map[string]*adt.Function{}
	for name, cb := range cfg.NativeCallbacks {
		nativeExt[name] = nativeFunction(name, cb)
	}

	var trace func(string, adt.Value)
	if cfg.Trace != nil {
		trace = func(msg string, v adt.Value) { cfg.Trace(msg) }
	}

	extVarFn, err := extVarResolver(cfg.ExtVars)
	if err != nil {
		return nil, err
	}

	rt := runtime.New(runtime.Config{
		Jpath:       cfg.Jpath,
		MaxStack:    maxStack,
		NativeFuncs: nativeExt,
	})
	stdObj := stdlib.Root(rt.Evaluator(), stdlib.Config{
		ExtVar:    extVarFn,
		Trace:     trace,
		NativeExt: nativeExt,
	})
	rt.SetRootScope(rootScope(stdObj))

	// An ImportResolver replaces the Runtime's own jpath/FileSystem
	// resolution entirely; it is wired in after construction since it
	// needs the Runtime's own Evaluator (to parse+evaluate resolved
	// imports) and scope builder (to bind "std"), both of which only
	// exist once the Runtime above has been built.
	if cfg.Importer != nil {
		rt.Evaluator().Importer = newResolverImporter(cfg.Importer, rt.Evaluator(), rootScope(stdObj))
	}

	return &Evaluator{rt: rt, tlaVars: cfg.TLAVars}, nil
}

// extVarResolver evaluates every Code-kind Var up front (ext vars have no
// importing file of their own, so they're evaluated as standalone
// snippets) and returns a stdlib.ExtVar closure over the results.
func extVarResolver(vars map[string]Var) (stdlib.ExtVar, error) {
	if len(vars) == 0 {
		return nil, nil
	}
	resolved := make(map[string]adt.Value, len(vars))
	for name, v := range vars {
		if !v.IsCode {
			resolved[name] = adt.NewString(v.Value)
			continue
		}
		val, err := evalStandaloneCode(name, v.Value)
		if err != nil {
			return nil, err
		}
		resolved[name] = val
	}
	return func(name string) (adt.Value, bool) {
		v, ok := resolved[name]
		return v, ok
	}, nil
}

// evalStandaloneCode evaluates a `--ext-code`/`--tla-code` snippet using a
// throwaway Evaluator carrying the same standard library, since ext vars
// and TLAs are evaluated independent of any particular file's scope.
func evalStandaloneCode(displayName, src string) (adt.Value, error) {
	rt := runtime.New(runtime.Config{})
	stdObj := stdlib.Root(rt.Evaluator(), stdlib.Config{})
	rt.SetRootScope(rootScope(stdObj))
	return rt.EvalSnippet(displayName, src)
}

// nativeFunction adapts a NativeCallback (plain Go values in, plain Go
// value out) to *adt.Function, converting to/from adt.Value the same way
// internal/stdlib's encoding intrinsics convert values for yaml.v3/
// go-toml/v2.
func nativeFunction(name string, cb NativeCallback) *adt.Function {
	params := make([]ast.Param, len(cb.Params))
	for i, p := range cb.Params {
		params[i] = ast.Param{Name: ast.Identifier(p)}
	}
	return &adt.Function{
		Name:   name,
		Params: params,
		Native: func(args []adt.Value) (adt.Value, error) {
			nativeArgs := make([]interface{}, len(args))
			for i, a := range args {
				nv, err := stdlib.ValueToNative(a)
				if err != nil {
					return nil, err
				}
				nativeArgs[i] = nv
			}
			result, err := cb.Func(nativeArgs)
			if err != nil {
				return nil, err
			}
			return stdlib.ValueFromNative(result)
		},
	}
}

// EvaluateFile parses and evaluates the file at path. If the result is a
// Function, it is called with the Evaluator's configured TLAs.
func (e *Evaluator) EvaluateFile(path string) (Value, error) {
	v, err := e.rt.EvalFile(path)
	if err != nil {
		return nil, err
	}
	return e.applyTLAs(v)
}

// EvaluateSnippet parses and evaluates src under displayName (used in
// error messages and std.thisFile). If the result is a Function, it is
// called with the Evaluator's configured TLAs.
func (e *Evaluator) EvaluateSnippet(displayName, src string) (Value, error) {
	v, err := e.rt.EvalSnippet(displayName, src)
	if err != nil {
		return nil, err
	}
	return e.applyTLAs(v)
}

func (e *Evaluator) applyTLAs(v adt.Value) (adt.Value, error) {
	fn, ok := v.(*adt.Function)
	if !ok {
		return v, nil
	}
	named := make(map[string]adt.Value, len(e.tlaVars))
	for name, tla := range e.tlaVars {
		if !tla.IsCode {
			named[name] = adt.NewString(tla.Value)
			continue
		}
		val, err := evalStandaloneCode(name, tla.Value)
		if err != nil {
			return nil, err
		}
		named[name] = val
	}
	return e.rt.Evaluator().ApplyNamed(fn, named)
}
