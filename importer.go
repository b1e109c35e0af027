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
	"sync"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/core/eval"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
	"github.com/jsonnet-go/jsonnet/syntax/parser"
	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// resolverImporter adapts a host-supplied ImportResolver to eval.Importer,
// mirroring internal/core/runtime's own import caches (cache.go), since a
// resolver-backed import still needs
// read-once, evaluate-once semantics and cycle detection, just keyed by
// the resolver's canonical path instead of a jpath search result.
type resolverImporter struct {
	resolve ImportResolver
	ev      *eval.Evaluator
	scope   func() *adt.Scope

	mu        sync.Mutex
	evalCache map[string]cacheEntry
	rawCache  map[string]rawEntry
	loading   map[string]bool
}

type cacheEntry struct {
	val adt.Value
	err error
}

type rawEntry struct {
	val adt.Value
	err error
}

func newResolverImporter(resolve ImportResolver, ev *eval.Evaluator, scope func() *adt.Scope) *resolverImporter {
	return &resolverImporter{
		resolve:   resolve,
		ev:        ev,
		scope:     scope,
		evalCache: map[string]cacheEntry{},
		rawCache:  map[string]rawEntry{},
		loading:   map[string]bool{},
	}
}

func (r *resolverImporter) fetch(fromFile, path string) (ImportResult, error) {
	res, err := r.resolve(fromFile, path)
	if err != nil {
		if ee, ok := err.(errors.Error); ok {
			return ImportResult{}, ee
		}
		return ImportResult{}, errors.New(errors.ImportNotFound, token.NoPos, nil, "%s", err.Error())
	}
	return res, nil
}

// Import implements eval.Importer for `import "path"`.
func (r *resolverImporter) Import(fromFile, path string) (adt.Value, error) {
	res, err := r.fetch(fromFile, path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.loading[res.FoundAt] {
		r.mu.Unlock()
		return nil, errors.New(errors.ImportCycle, token.NoPos, nil, "import cycle detected at %s", res.FoundAt)
	}
	if ce, ok := r.evalCache[res.FoundAt]; ok {
		r.mu.Unlock()
		return ce.val, ce.err
	}
	r.loading[res.FoundAt] = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.loading, res.FoundAt)
		r.mu.Unlock()
	}()

	root, perr := parser.ParseFile(res.FoundAt, res.Content)
	if perr != nil {
		e := errors.New(errors.ParseError, token.NoPos, nil, "%s", perr.Error())
		r.storeEval(res.FoundAt, nil, e)
		return nil, e
	}
	prev := r.ev.CurrentFile
	r.ev.CurrentFile = res.FoundAt
	v, verr := r.ev.Eval(root, r.scope())
	r.ev.CurrentFile = prev
	r.storeEval(res.FoundAt, v, verr)
	return v, verr
}

// ImportString implements eval.Importer for `importstr`.
func (r *resolverImporter) ImportString(fromFile, path string) (adt.Value, error) {
	res, err := r.fetch(fromFile, path)
	if err != nil {
		return nil, err
	}
	key := "str\x00" + res.FoundAt
	if v, ok := r.cachedRaw(key); ok {
		return v.val, v.err
	}
	v := adt.NewString(string(res.Content))
	r.storeRaw(key, rawEntry{val: v})
	return v, nil
}

// ImportBinary implements eval.Importer for `importbin`.
func (r *resolverImporter) ImportBinary(fromFile, path string) (adt.Value, error) {
	res, err := r.fetch(fromFile, path)
	if err != nil {
		return nil, err
	}
	key := "bin\x00" + res.FoundAt
	if v, ok := r.cachedRaw(key); ok {
		return v.val, v.err
	}
	arr := make(adt.Array, len(res.Content))
	for i, b := range res.Content {
		arr[i] = adt.Resolved(adt.Number(b))
	}
	r.storeRaw(key, rawEntry{val: arr})
	return arr, nil
}

func (r *resolverImporter) cachedRaw(key string) (rawEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rawCache[key]
	return e, ok
}

func (r *resolverImporter) storeRaw(key string, e rawEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rawCache[key] = e
}

func (r *resolverImporter) storeEval(key string, v adt.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evalCache[key] = cacheEntry{val: v, err: err}
}
