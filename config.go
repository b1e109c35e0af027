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

// Package jsonnet is the public entry point: it wires the parser, the
// tree-walking evaluator, the import cache, and the standard library
// into the single Evaluator type a host program constructs and drives.
package jsonnet

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/core/runtime"
)

// Var is one `--ext-str`/`--ext-code`/`--tla-str`/`--tla-code` value: a
// raw string used verbatim, or a snippet of Jsonnet source evaluated
// before use. It is the same shape for ext_vars and tla_args (spec.md
// §6).
type Var = runtime.ExtVar

// Str builds a raw-string Var, equivalent to `--ext-str`/`--tla-str`.
func Str(s string) Var { return Var{Value: s} }

// Code builds a Jsonnet-source Var, equivalent to `--ext-code`/`--tla-code`.
func Code(src string) Var { return Var{IsCode: true, Value: src} }

// ImportResult is the successful outcome of an ImportResolver call: the
// canonical path the import resolved to (used for relative imports from
// within the imported file, and for cache keying) plus its contents.
type ImportResult struct {
	FoundAt string
	Content []byte
}

// ImportResolver replaces the evaluator's own jpath/filesystem-based
// import resolution. from names the file containing the import: a
// snippet's display name, a file's path, or the FoundAt of a file this
// resolver returned; path is the literal that
// follows the `import` keyword. Implementations must be deterministic
// within one Evaluator instance (spec.md §6's import resolver contract).
type ImportResolver func(from, path string) (ImportResult, error)

// NativeCallback is a host function exposed to Jsonnet source as
// std.native("name")(...). Arguments and the result are plain Go values
// (map[string]any, []any, string, float64, bool, nil), the same shape
// internal/stdlib's encoding intrinsics use, so a callback need not
// import this module's internal packages to inspect its arguments.
type NativeCallback struct {
	Params []string
	Func   func(args []interface{}) (interface{}, error)
}

// TraceSink receives one formatted line per std.trace call.
type TraceSink func(line string)

// Config configures a new Evaluator, mirroring spec.md §6's new_evaluator.
type Config struct {
	// MaxStack bounds the evaluator's recursion depth. Zero uses the
	// spec's default of 500.
	MaxStack int

	// ExtVars supplies `std.extVar` values, keyed by name.
	ExtVars map[string]Var

	// TLAVars supplies top-level-argument values, keyed by parameter
	// name, used to call the top-level Value when it is a function.
	TLAVars map[string]Var

	// Jpath is an ordered list of directories searched for imports not
	// resolved relative to the importing file. Ignored when Importer is
	// set.
	Jpath []string

	// Importer, when set, replaces jpath/filesystem import resolution
	// entirely.
	Importer ImportResolver

	// NativeCallbacks registers extra std.native functions.
	NativeCallbacks map[string]NativeCallback

	// Trace receives std.trace output. A nil Trace discards it.
	Trace TraceSink

	// PreserveFieldOrder is accepted for parity with spec.md §6 but has
	// no effect: this implementation always manifests object fields in
	// sorted order (see adt.Object.FieldNames), matching the spec's own
	// Non-goal on field-order preservation.
	PreserveFieldOrder bool
}

// rootScope builds the scope every root file/import/snippet evaluates
// in: the std object bound to the identifier "std".
func rootScope(obj *adt.Object) func() *adt.Scope {
	return func() *adt.Scope {
		root := adt.NewRootScope()
		return root.WithBind("std", adt.Resolved(obj))
	}
}
