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

// Array/object traversal and combination: map/filter/fold, sorting and
// set operations, and the assorted small helpers (range, repeat, join,
// flattenArrays, ...) that lean on them.
package stdlib

import (
	"sort"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/core/eval"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// registerCollections wires the intrinsic subset that std.jsonnet's
// map/sort/set family builds on: map/filter/fold variants, range, join,
// reverse, the sorted-sequence sort/set operations, and makeArray/slice.
// mapWithIndex, repeat, flattenArrays, all, any, find, member and count
// are plain library code over these intrinsics and live in std.jsonnet
// instead (see stdlib.go).
func (b *builder) registerCollections() {
	b.fn("map", []string{"func", "arr"}, b.stdMap)
	b.fn("filter", []string{"func", "arr"}, b.stdFilter)
	b.fn("foldl", []string{"func", "arr", "init"}, b.stdFoldl)
	b.fn("foldr", []string{"func", "arr", "init"}, b.stdFoldr)
	b.fn("flatMap", []string{"func", "arr"}, b.stdFlatMap)

	b.fnD("range", []ast.Param{req("from"), req("to")}, stdRange)
	b.fnD("join", []ast.Param{req("sep"), req("arr")}, stdJoin)
	b.fn("reverse", []string{"arr"}, stdReverse)

	b.fnD("sortImpl", []ast.Param{req("arr"), req("keyF")}, b.stdSort)
	b.fnD("uniq", []ast.Param{req("arr"), opt("keyF", identityFn())}, b.stdUniq)
	b.fnD("set", []ast.Param{req("arr"), opt("keyF", identityFn())}, b.stdSet)
	b.fnD("setUnion", []ast.Param{req("a"), req("b"), opt("keyF", identityFn())}, b.stdSetUnion)
	b.fnD("setInter", []ast.Param{req("a"), req("b"), opt("keyF", identityFn())}, b.stdSetInter)
	b.fnD("setDiff", []ast.Param{req("a"), req("b"), opt("keyF", identityFn())}, b.stdSetDiff)
	b.fnD("setMember", []ast.Param{req("x"), req("arr"), opt("keyF", identityFn())}, b.stdSetMember)

	b.fnD("makeArray", []ast.Param{req("sz"), req("func")}, b.stdMakeArray)
	b.fnD("slice", []ast.Param{req("indexable"), req("index"), opt("end", litNull()), opt("step", litNull())}, stdSlice)
}

// identityFn is the `function(x) x` default for sort/uniq/set's keyF
// parameter: a literal AST node so it evaluates under any (even unused)
// scope, per the native-default-parameter convention in stdlib.go.
func identityFn() ast.Expr {
	return &ast.Function{
		Params: []ast.Param{{Name: "x"}},
		Body:   &ast.Var{Name: "x"},
	}
}

func (b *builder) stdMap(a []adt.Value) (adt.Value, error) {
	f, err := argFunction(a, 0)
	if err != nil {
		return nil, err
	}
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	out := make(adt.Array, len(arr))
	for i, t := range arr {
		t := t
		out[i] = lazyApply(b.ev, f, func() ([]adt.Value, error) {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			return []adt.Value{v}, nil
		})
	}
	return out, nil
}

func (b *builder) stdFilter(a []adt.Value) (adt.Value, error) {
	f, err := argFunction(a, 0)
	if err != nil {
		return nil, err
	}
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	for _, t := range arr {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		keep, err := b.ev.Apply(f, []adt.Value{v})
		if err != nil {
			return nil, err
		}
		kb, ok := keep.(adt.Bool)
		if !ok {
			return nil, typeError("boolean", keep)
		}
		if bool(kb) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (b *builder) stdFoldl(a []adt.Value) (adt.Value, error) {
	f, err := argFunction(a, 0)
	if err != nil {
		return nil, err
	}
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	acc := a[2]
	for _, t := range arr {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		acc, err = b.ev.Apply(f, []adt.Value{acc, v})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (b *builder) stdFoldr(a []adt.Value) (adt.Value, error) {
	f, err := argFunction(a, 0)
	if err != nil {
		return nil, err
	}
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	acc := a[2]
	for i := len(arr) - 1; i >= 0; i-- {
		v, err := arr[i].Force()
		if err != nil {
			return nil, err
		}
		acc, err = b.ev.Apply(f, []adt.Value{v, acc})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (b *builder) stdFlatMap(a []adt.Value) (adt.Value, error) {
	f, err := argFunction(a, 0)
	if err != nil {
		return nil, err
	}
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	for _, t := range arr {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		r, err := b.ev.Apply(f, []adt.Value{v})
		if err != nil {
			return nil, err
		}
		ra, ok := r.(adt.Array)
		if !ok {
			return nil, typeError("array", r)
		}
		out = append(out, ra...)
	}
	return out, nil
}

// lazyApply wraps a call to fn as a Thunk, so std.map's result elements
// stay as lazy as ordinary array literals until actually demanded.
func lazyApply(ev *eval.Evaluator, fn *adt.Function, args func() ([]adt.Value, error)) *adt.Thunk {
	return adt.NewThunk(nil, nil, func(ast.Expr, *adt.Scope) (adt.Value, error) {
		vs, err := args()
		if err != nil {
			return nil, err
		}
		return ev.Apply(fn, vs)
	})
}

func stdRange(a []adt.Value) (adt.Value, error) {
	from, err := argNumber(a, 0)
	if err != nil {
		return nil, err
	}
	to, err := argNumber(a, 1)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	for n := from; n <= to; n++ {
		out = append(out, adt.Resolved(n))
	}
	return out, nil
}

func stdJoin(a []adt.Value) (adt.Value, error) {
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	switch sep := a[0].(type) {
	case adt.String:
		var parts []adt.String
		for _, t := range arr {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			if _, isNull := v.(adt.Null); isNull {
				continue
			}
			s, ok := v.(adt.String)
			if !ok {
				return nil, typeError("string", v)
			}
			parts = append(parts, s)
		}
		var out adt.String
		for i, p := range parts {
			if i > 0 {
				out = append(out, sep...)
			}
			out = append(out, p...)
		}
		return out, nil
	case adt.Array:
		var out adt.Array
		first := true
		for _, t := range arr {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			if _, isNull := v.(adt.Null); isNull {
				continue
			}
			elems, ok := v.(adt.Array)
			if !ok {
				return nil, typeError("array", v)
			}
			if !first {
				out = append(out, sep...)
			}
			out = append(out, elems...)
			first = false
		}
		return out, nil
	}
	return nil, typeError("string or array", a[0])
}

func stdReverse(a []adt.Value) (adt.Value, error) {
	arr, err := argArray(a, 0)
	if err != nil {
		return nil, err
	}
	out := make(adt.Array, len(arr))
	for i, t := range arr {
		out[len(arr)-1-i] = t
	}
	return out, nil
}

// keyOf projects v through keyF (identity when the caller passed none),
// used by sort/uniq/set and friends to order and compare by a derived key.
func (b *builder) keyOf(keyF *adt.Function, v adt.Value) (adt.Value, error) {
	return b.ev.Apply(keyF, []adt.Value{v})
}

func (b *builder) stdSort(a []adt.Value) (adt.Value, error) {
	arr, err := argArray(a, 0)
	if err != nil {
		return nil, err
	}
	keyF, err := argFunction(a, 1)
	if err != nil {
		return nil, err
	}
	return b.sortArray(arr, keyF)
}

func (b *builder) sortArray(arr adt.Array, keyF *adt.Function) (adt.Array, error) {
	vals, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	keys := make([]adt.Value, len(vals))
	for i, v := range vals {
		k, err := b.keyOf(keyF, v)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	var sortErr error
	sort.SliceStable(idx, func(x, y int) bool {
		c, err := adt.Compare(keys[idx[x]], keys[idx[y]])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	out := make(adt.Array, len(idx))
	for pos, iv := range idx {
		out[pos] = adt.Resolved(vals[iv])
	}
	return out, nil
}

func (b *builder) stdUniq(a []adt.Value) (adt.Value, error) {
	arr, err := argArray(a, 0)
	if err != nil {
		return nil, err
	}
	keyF, err := argFunction(a, 1)
	if err != nil {
		return nil, err
	}
	vals, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	var prevKey adt.Value
	for _, v := range vals {
		k, err := b.keyOf(keyF, v)
		if err != nil {
			return nil, err
		}
		if prevKey != nil {
			eq, err := adt.Equal(prevKey, k)
			if err != nil {
				return nil, err
			}
			if eq {
				continue
			}
		}
		out = append(out, adt.Resolved(v))
		prevKey = k
	}
	return out, nil
}

func (b *builder) stdSet(a []adt.Value) (adt.Value, error) {
	arr, err := argArray(a, 0)
	if err != nil {
		return nil, err
	}
	keyF, err := argFunction(a, 1)
	if err != nil {
		return nil, err
	}
	sorted, err := b.sortArray(arr, keyF)
	if err != nil {
		return nil, err
	}
	return b.stdUniq([]adt.Value{sorted, keyF})
}

// keyedElem pairs a forced value with its sort key, for the linear
// merges below. setUnion/setInter/setDiff assume both inputs already
// come from std.set (or another sorted-by-key source), so they never
// re-sort; they just walk both sequences once like a merge-sort merge
// step.
type keyedElem struct {
	v adt.Value
	k adt.Value
}

func (b *builder) keyedElems(arr adt.Array, keyF *adt.Function) ([]keyedElem, error) {
	out := make([]keyedElem, len(arr))
	for i, t := range arr {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		k, err := b.keyOf(keyF, v)
		if err != nil {
			return nil, err
		}
		out[i] = keyedElem{v: v, k: k}
	}
	return out, nil
}

func (b *builder) stdSetUnion(a []adt.Value) (adt.Value, error) {
	arrA, keyF, err := b.setArgs(a)
	if err != nil {
		return nil, err
	}
	arrB, ok := a[1].(adt.Array)
	if !ok {
		return nil, typeError("array", a[1])
	}
	xa, err := b.keyedElems(arrA, keyF)
	if err != nil {
		return nil, err
	}
	xb, err := b.keyedElems(arrB, keyF)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	i, j := 0, 0
	for i < len(xa) && j < len(xb) {
		c, err := adt.Compare(xa[i].k, xb[j].k)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			out = append(out, adt.Resolved(xa[i].v))
			i++
		case c > 0:
			out = append(out, adt.Resolved(xb[j].v))
			j++
		default:
			out = append(out, adt.Resolved(xa[i].v))
			i++
			j++
		}
	}
	for ; i < len(xa); i++ {
		out = append(out, adt.Resolved(xa[i].v))
	}
	for ; j < len(xb); j++ {
		out = append(out, adt.Resolved(xb[j].v))
	}
	return out, nil
}

func (b *builder) stdSetInter(a []adt.Value) (adt.Value, error) {
	arrA, keyF, err := b.setArgs(a)
	if err != nil {
		return nil, err
	}
	arrB, ok := a[1].(adt.Array)
	if !ok {
		return nil, typeError("array", a[1])
	}
	xa, err := b.keyedElems(arrA, keyF)
	if err != nil {
		return nil, err
	}
	xb, err := b.keyedElems(arrB, keyF)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	i, j := 0, 0
	for i < len(xa) && j < len(xb) {
		c, err := adt.Compare(xa[i].k, xb[j].k)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, adt.Resolved(xa[i].v))
			i++
			j++
		}
	}
	return out, nil
}

func (b *builder) stdSetDiff(a []adt.Value) (adt.Value, error) {
	arrA, keyF, err := b.setArgs(a)
	if err != nil {
		return nil, err
	}
	arrB, ok := a[1].(adt.Array)
	if !ok {
		return nil, typeError("array", a[1])
	}
	xa, err := b.keyedElems(arrA, keyF)
	if err != nil {
		return nil, err
	}
	xb, err := b.keyedElems(arrB, keyF)
	if err != nil {
		return nil, err
	}
	var out adt.Array
	i, j := 0, 0
	for i < len(xa) && j < len(xb) {
		c, err := adt.Compare(xa[i].k, xb[j].k)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			out = append(out, adt.Resolved(xa[i].v))
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	for ; i < len(xa); i++ {
		out = append(out, adt.Resolved(xa[i].v))
	}
	return out, nil
}

func (b *builder) setArgs(a []adt.Value) (adt.Array, *adt.Function, error) {
	arrA, err := argArray(a, 0)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := a[1].(adt.Array); !ok {
		return nil, nil, typeError("array", a[1])
	}
	keyF, err := argFunction(a, 2)
	if err != nil {
		return nil, nil, err
	}
	return arrA, keyF, nil
}

func (b *builder) stdSetMember(a []adt.Value) (adt.Value, error) {
	x := a[0]
	arr, err := argArray(a, 1)
	if err != nil {
		return nil, err
	}
	keyF, err := argFunction(a, 2)
	if err != nil {
		return nil, err
	}
	xk, err := b.keyOf(keyF, x)
	if err != nil {
		return nil, err
	}
	xs, err := b.keyedElems(arr, keyF)
	if err != nil {
		return nil, err
	}
	lo, hi := 0, len(xs)
	for lo < hi {
		mid := (lo + hi) / 2
		c, err := adt.Compare(xs[mid].k, xk)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return adt.Bool(true), nil
		}
	}
	return adt.Bool(false), nil
}

func (b *builder) stdMakeArray(a []adt.Value) (adt.Value, error) {
	sz, err := argNumber(a, 0)
	if err != nil {
		return nil, err
	}
	f, err := argFunction(a, 1)
	if err != nil {
		return nil, err
	}
	n := int(sz)
	out := make(adt.Array, n)
	for i := 0; i < n; i++ {
		i := i
		out[i] = lazyApply(b.ev, f, func() ([]adt.Value, error) {
			return []adt.Value{adt.Number(i)}, nil
		})
	}
	return out, nil
}

func stdSlice(a []adt.Value) (adt.Value, error) {
	index := a[1]
	end := a[2]
	step := a[3]
	begin := 0
	if n, ok := index.(adt.Number); ok {
		begin = int(n)
	} else if _, isNull := index.(adt.Null); !isNull {
		return nil, typeError("number or null", index)
	}
	stepN := 1
	if n, ok := step.(adt.Number); ok {
		stepN = int(n)
	} else if _, isNull := step.(adt.Null); !isNull {
		return nil, typeError("number or null", step)
	}
	if stepN <= 0 {
		stepN = 1
	}
	switch x := a[0].(type) {
	case adt.Array:
		endN := len(x)
		if n, ok := end.(adt.Number); ok {
			endN = int(n)
		}
		return sliceArray(x, begin, endN, stepN), nil
	case adt.String:
		endN := len(x)
		if n, ok := end.(adt.Number); ok {
			endN = int(n)
		}
		return sliceString(x, begin, endN, stepN), nil
	}
	return nil, typeError("array or string", a[0])
}

func sliceArray(x adt.Array, begin, end, step int) adt.Array {
	if begin < 0 {
		begin = 0
	}
	if end > len(x) {
		end = len(x)
	}
	var out adt.Array
	for i := begin; i < end; i += step {
		out = append(out, x[i])
	}
	return out
}

func sliceString(x adt.String, begin, end, step int) adt.String {
	if begin < 0 {
		begin = 0
	}
	if end > len(x) {
		end = len(x)
	}
	var out adt.String
	for i := begin; i < end; i += step {
		out = append(out, x[i])
	}
	return out
}
