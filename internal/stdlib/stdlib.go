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

// Package stdlib builds the `std` object every Jsonnet evaluation sees in
// scope. Reserved intrinsics (type tests, field/array primitives, the
// codecs, and anything else §4.3 names as a dispatched-by-name function)
// are native Go (adt.Function.Native); the rest of std is plain Jsonnet
// source (std.jsonnet, embedded below) evaluated once against a scope
// where "std" is already bound to the object being built, so library
// functions can call each other through the ordinary std.foo path.
package stdlib

import (
	_ "embed"
	"fmt"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/core/eval"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
	"github.com/jsonnet-go/jsonnet/syntax/parser"
)

//go:embed std.jsonnet
var stdSource []byte

var stdAST ast.Expr

func init() {
	root, err := parser.ParseSnippet("std.jsonnet", stdSource)
	if err != nil {
		panic(fmt.Sprintf("stdlib: std.jsonnet failed to parse: %v", err))
	}
	stdAST = root
}

// ExtVar resolves the value of an external variable by name, used by
// std.extVar.
type ExtVar func(name string) (adt.Value, bool)

// Config supplies the host-provided pieces of std that aren't pure
// functions of their arguments: the external variable table, a sink for
// std.trace output, and extra native functions. std.thisFile reads the
// evaluator's CurrentFile instead.
type Config struct {
	ExtVar    ExtVar
	Trace     func(msg string, value adt.Value)
	NativeExt map[string]*adt.Function // extra functions registered via native_callbacks
}

// Root builds the std object: a native layer of intrinsics concatenated
// with the layer std.jsonnet's own top-level object literal produces. ev
// is used by higher-order functions (map/filter/foldl/sort/...) to invoke
// Jsonnet function values passed as arguments, and to evaluate
// std.jsonnet itself.
//
// Construction ties a knot: std.jsonnet's functions call each other as
// std.foo, so "std" must already name the finished object while
// std.jsonnet is being evaluated. final is allocated empty first, bound
// to "std" in the scope std.jsonnet evaluates under, and only given its
// real Layers once both the native and Jsonnet-sourced halves exist. This
// is safe because nothing forces a field during this construction itself
// (evalFieldBody isn't invoked until some later caller looks a field up).
func Root(ev *eval.Evaluator, cfg Config) *adt.Object {
	b := &builder{ev: ev, cfg: cfg, fields: map[string]adt.Value{}}
	b.registerLang()
	b.registerCollections()
	b.registerStrings()
	b.registerMath()
	b.registerEncode()
	b.registerRegex()
	for name, fn := range cfg.NativeExt {
		b.fields[name] = fn
	}
	ev.StringFormat = func(format string, arg adt.Value) (adt.Value, error) {
		return b.stdFormat([]adt.Value{adt.NewString(format), arg})
	}

	native := adt.NewNativeObject(b.fields)

	final := adt.NewObject(nil, ev.Forcer())
	scope := adt.NewRootScope().WithBind("std", adt.Resolved(final))
	libVal, err := ev.Eval(stdAST, scope)
	if err != nil {
		panic(fmt.Sprintf("stdlib: std.jsonnet failed to evaluate: %v", err))
	}
	lib, ok := libVal.(*adt.Object)
	if !ok {
		panic(fmt.Sprintf("stdlib: std.jsonnet must evaluate to an object, got %s", libVal.Kind()))
	}

	layers := make([]*adt.Layer, 0, len(native.Layers)+len(lib.Layers))
	layers = append(layers, native.Layers...)
	layers = append(layers, lib.Layers...)
	final.Layers = layers
	return final
}

type builder struct {
	ev     *eval.Evaluator
	cfg    Config
	fields map[string]adt.Value
}

// fn registers a native function under name with the given parameter
// names (for error messages and std.native-style introspection); f
// receives already-forced argument Values in positional order.
func (b *builder) fn(name string, params []string, f func(args []adt.Value) (adt.Value, error)) {
	b.fields[name] = &adt.Function{Name: name, Params: paramList(params), Native: f}
}

func paramList(names []string) []ast.Param {
	ps := make([]ast.Param, len(names))
	for i, n := range names {
		ps[i] = ast.Param{Name: ast.Identifier(n)}
	}
	return ps
}

// fnD registers a native function with one or more optional parameters.
// A default is a literal AST node (litNull/litBool/...); these evaluate
// without consulting their captured scope, so they are safe to force even
// though no real call site's scope backs them.
func (b *builder) fnD(name string, params []ast.Param, f func(args []adt.Value) (adt.Value, error)) {
	b.fields[name] = &adt.Function{Name: name, Params: params, Native: f}
}

func req(name string) ast.Param { return ast.Param{Name: ast.Identifier(name)} }

func opt(name string, def ast.Expr) ast.Param {
	return ast.Param{Name: ast.Identifier(name), Default: def}
}

func litNull() ast.Expr   { return &ast.Null{} }
func litBool(v bool) ast.Expr { return &ast.Bool{Value: v} }
func litNumber(v float64) ast.Expr {
	return &ast.Number{Value: v}
}
func litString(v string) ast.Expr { return &ast.String{Value: v} }

func typeError(expected string, got adt.Value) error {
	return &adt.TypeError{Expected: expected, Got: got.Kind().String()}
}

func argString(args []adt.Value, i int) (adt.String, error) {
	s, ok := args[i].(adt.String)
	if !ok {
		return nil, typeError("string", args[i])
	}
	return s, nil
}

func argNumber(args []adt.Value, i int) (adt.Number, error) {
	n, ok := args[i].(adt.Number)
	if !ok {
		return 0, typeError("number", args[i])
	}
	return n, nil
}

func argBool(args []adt.Value, i int) (adt.Bool, error) {
	n, ok := args[i].(adt.Bool)
	if !ok {
		return false, typeError("boolean", args[i])
	}
	return n, nil
}

func argArray(args []adt.Value, i int) (adt.Array, error) {
	a, ok := args[i].(adt.Array)
	if !ok {
		return nil, typeError("array", args[i])
	}
	return a, nil
}

func argObject(args []adt.Value, i int) (*adt.Object, error) {
	o, ok := args[i].(*adt.Object)
	if !ok {
		return nil, typeError("object", args[i])
	}
	return o, nil
}

func argFunction(args []adt.Value, i int) (*adt.Function, error) {
	f, ok := args[i].(*adt.Function)
	if !ok {
		return nil, typeError("function", args[i])
	}
	return f, nil
}

func forceAll(arr adt.Array) ([]adt.Value, error) {
	out := make([]adt.Value, len(arr))
	for i, t := range arr {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
