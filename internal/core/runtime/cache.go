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

// Import resolution and the import caches: the evaluated result (or
// error) of each file reached by `import`, keyed by resolved path, and
// the raw value of each `importstr`/`importbin` target. A file imported
// from several places is parsed and evaluated once.
package runtime

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
	"github.com/jsonnet-go/jsonnet/syntax/parser"
	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// rawEntry caches an importstr/importbin result, separately from the
// evaluated-file cache, since importstr/importbin never parse.
type rawEntry struct {
	val adt.Value
	err error
}

// Import implements eval.Importer: resolve a `import "path"` target, then
// parse and evaluate it, caching the result per resolved path.
func (r *Runtime) Import(fromFile, path string) (adt.Value, error) {
	resolved, err := r.resolve(fromFile, path)
	if err != nil {
		return nil, err
	}
	return r.load(resolved)
}

// ImportString implements eval.Importer for `importstr`: the raw file
// contents as a Jsonnet string, independent of the evaluated-file cache
// since the bytes are never parsed.
func (r *Runtime) ImportString(fromFile, path string) (adt.Value, error) {
	resolved, err := r.resolve(fromFile, path)
	if err != nil {
		return nil, err
	}
	key := "str\x00" + resolved
	if v, ok := r.cachedRaw(key); ok {
		return v.val, v.err
	}
	data, err := r.fs.ReadFile(resolved)
	if err != nil {
		e := errors.New(errors.ImportNotFound, token.NoPos, nil, "%s", err.Error())
		r.storeRaw(key, rawEntry{err: e})
		return nil, e
	}
	v := adt.NewString(string(data))
	r.storeRaw(key, rawEntry{val: v})
	return v, nil
}

// ImportBinary implements eval.Importer for `importbin`: the raw file
// contents as an array of byte-valued numbers.
func (r *Runtime) ImportBinary(fromFile, path string) (adt.Value, error) {
	resolved, err := r.resolve(fromFile, path)
	if err != nil {
		return nil, err
	}
	key := "bin\x00" + resolved
	if v, ok := r.cachedRaw(key); ok {
		return v.val, v.err
	}
	data, err := r.fs.ReadFile(resolved)
	if err != nil {
		e := errors.New(errors.ImportNotFound, token.NoPos, nil, "%s", err.Error())
		r.storeRaw(key, rawEntry{err: e})
		return nil, e
	}
	arr := make(adt.Array, len(data))
	for i, b := range data {
		arr[i] = adt.Resolved(adt.Number(b))
	}
	r.storeRaw(key, rawEntry{val: arr})
	return arr, nil
}

func (r *Runtime) cachedRaw(key string) (rawEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rawCache == nil {
		return rawEntry{}, false
	}
	e, ok := r.rawCache[key]
	return e, ok
}

func (r *Runtime) storeRaw(key string, e rawEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rawCache == nil {
		r.rawCache = map[string]rawEntry{}
	}
	r.rawCache[key] = e
}

// load parses and evaluates the file at resolved (an absolute path),
// through the evaluated-file cache, detecting import cycles via the
// in-progress set.
func (r *Runtime) load(resolved string) (adt.Value, error) {
	r.mu.Lock()
	if r.loading[resolved] {
		r.mu.Unlock()
		return nil, errors.New(errors.ImportCycle, token.NoPos, nil, "import cycle detected at %s", resolved)
	}
	if ce, ok := r.cache[resolved]; ok {
		r.mu.Unlock()
		return ce.val, ce.err
	}
	r.loading[resolved] = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.loading, resolved)
		r.mu.Unlock()
	}()

	data, err := r.fs.ReadFile(resolved)
	if err != nil {
		e := errors.New(errors.ImportNotFound, token.NoPos, nil, "%s", err.Error())
		r.store(resolved, nil, e)
		return nil, e
	}
	root, err := parser.ParseFile(resolved, data)
	if err != nil {
		e := errors.New(errors.ParseError, token.NoPos, nil, "%s", err.Error())
		r.store(resolved, nil, e)
		return nil, e
	}

	prev := r.eval.CurrentFile
	r.eval.CurrentFile = resolved
	v, err := r.eval.Eval(root, r.scope())
	r.eval.CurrentFile = prev
	r.store(resolved, v, err)
	return v, err
}

func (r *Runtime) store(path string, v adt.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[path] = &cacheEntry{val: v, err: err}
}
