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

// Package runtime is the evaluator's process-scoped collaborator: it
// resolves import paths against a jpath search list, reads and parses
// files, and caches each imported file's evaluated result plus the raw
// importstr/importbin values. It also carries the per-evaluation
// configuration (ext vars, max stack, native callbacks, cancellation)
// that internal/core/eval treats as opaque.
package runtime

import (
	"os"
	"sync"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/core/eval"
	"github.com/jsonnet-go/jsonnet/internal/filesystem"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
	"github.com/jsonnet-go/jsonnet/syntax/parser"
	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// ExtVar is one `--ext-str`/`--ext-code`/`--tla-str`/`--tla-code` value.
type ExtVar struct {
	// IsCode marks a `-code` value, evaluated as Jsonnet source; otherwise
	// Value is used verbatim as a string.
	IsCode bool
	Value  string
}

// FileSystem abstracts file access so tests can substitute an in-memory
// tree instead of touching disk.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Abs(path string) (string, error)
}

// Config configures a Runtime, mirroring spec.md §6's Evaluator API.
type Config struct {
	Jpath       []string
	ExtVars     map[string]ExtVar
	TLAVars     map[string]ExtVar
	MaxStack    int
	Cancel      eval.Canceller
	FileSystem  FileSystem
	NativeFuncs map[string]*adt.Function

	// Importer, when set, replaces the Runtime's own jpath/FileSystem
	// based import resolution entirely. Used by the facade's
	// import_resolver option (spec.md §6) to let a host supply imports
	// that don't live on disk.
	Importer eval.Importer
}

// Runtime owns the import cache and hands out a single Evaluator
// configured to resolve imports through it. It is not safe for concurrent
// use by multiple goroutines evaluating independent root expressions;
// construct one Runtime per evaluation, matching spec.md §5.
type Runtime struct {
	cfg  Config
	eval *eval.Evaluator
	fs   FileSystem

	// rootScope builds the scope new root files and imports evaluate in
	// (typically binding the "std" identifier); set by the facade once
	// the standard library object exists.
	rootScope func() *adt.Scope

	mu       sync.Mutex
	cache    map[string]*cacheEntry
	rawCache map[string]rawEntry
	loading  map[string]bool
}

type cacheEntry struct {
	val Value
	err error
}

// Value is a type alias kept local to avoid a stutter; it is exactly
// adt.Value.
type Value = adt.Value

// New constructs a Runtime from cfg. fs defaults to the OS filesystem
// rooted at the process's working directory.
func New(cfg Config) *Runtime {
	fs := cfg.FileSystem
	if fs == nil {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		fs = &filesystem.OSFS{CWD: cwd}
	}
	r := &Runtime{
		cfg:     cfg,
		fs:      fs,
		cache:   map[string]*cacheEntry{},
		loading: map[string]bool{},
	}
	importer := eval.Importer(r)
	if cfg.Importer != nil {
		importer = cfg.Importer
	}
	r.eval = eval.NewEvaluator(importer, cfg.Cancel, cfg.MaxStack)
	return r
}

// Evaluator returns the Runtime's bound Evaluator.
func (r *Runtime) Evaluator() *eval.Evaluator { return r.eval }

// SetRootScope installs the function used to build the scope each freshly
// loaded file evaluates in (normally one that binds "std").
func (r *Runtime) SetRootScope(fn func() *adt.Scope) { r.rootScope = fn }

func (r *Runtime) scope() *adt.Scope {
	if r.rootScope != nil {
		return r.rootScope()
	}
	return adt.NewRootScope()
}

// EvalFile parses and evaluates the named file as the root of an
// evaluation, going through the same cache imports use so a file given
// directly on the command line and the same file reached via `import`
// share one cached result.
func (r *Runtime) EvalFile(path string) (adt.Value, error) {
	resolved, err := r.fs.Abs(path)
	if err != nil {
		return nil, errors.New(errors.ImportNotFound, token.NoPos, nil, "%s", err.Error())
	}
	return r.load(resolved)
}

// EvalSnippet parses and evaluates src under displayName, without
// touching the cache (a snippet is not a file other imports can target).
func (r *Runtime) EvalSnippet(displayName, src string) (adt.Value, error) {
	root, err := parser.ParseSnippet(displayName, []byte(src))
	if err != nil {
		return nil, errors.New(errors.ParseError, token.NoPos, nil, "%s", err.Error())
	}
	prev := r.eval.CurrentFile
	r.eval.CurrentFile = displayName
	defer func() { r.eval.CurrentFile = prev }()
	return r.eval.Eval(root, r.scope())
}
