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

package jsonnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsonnet-go/jsonnet"
)

func TestStdTypePredicates(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `[
		std.isNull(null), std.isBoolean(false), std.isNumber(1),
		std.isString("x"), std.isArray([]), std.isObject({}),
		std.isFunction(function() 1),
	]`)
	assert.JSONEq(t, `[true,true,true,true,true,true,true]`, out)
}

func TestStdToString(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `[std.toString("a"), std.toString(1), std.toString(null), std.toString(true)]`)
	assert.JSONEq(t, `["a","1","null","true"]`, out)
}

func TestStdObjectFieldFamily(t *testing.T) {
	src := `
		local o = { a: 1, b: 2 } + { c:: 3 };
		[std.objectFields(o), std.objectFieldsAll(o), std.objectValues(o), std.objectHas(o, "c"), std.objectHasAll(o, "c")]
	`
	out := manifest(t, jsonnet.Config{}, src)
	assert.JSONEq(t, `[["a","b"],["a","b","c"],[1,2],false,true]`, out)
}

func TestStdObjectRemoveKey(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `std.objectRemoveKey({ a: 1, b: 2 }, "a")`)
	assert.JSONEq(t, `{"b":2}`, out)
}

func TestStdGet(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `[std.get({ a: 1 }, "a"), std.get({ a: 1 }, "b", "missing")]`)
	assert.JSONEq(t, `[1,"missing"]`, out)
}

func TestStdPrune(t *testing.T) {
	src := `std.prune({ a: null, b: [], c: {}, d: 1, e: { f: null, g: 2 }, h: [null, 3] })`
	out := manifest(t, jsonnet.Config{}, src)
	assert.JSONEq(t, `{"d":1,"e":{"g":2},"h":[3]}`, out)
}

func TestStdPruneKeepsRecursivelyComputedField(t *testing.T) {
	// The field under prune is produced by a chain of 20 recursive
	// calls; prune keeps its non-empty result unchanged.
	src := `
		local counted(n) = if n == 0 then { v: 1 } else { v: counted(n - 1).v };
		std.prune({ a: counted(20) })
	`
	out := manifest(t, jsonnet.Config{}, src)
	assert.JSONEq(t, `{"a":{"v":1}}`, out)
}

func TestStdMergePatch(t *testing.T) {
	src := `std.mergePatch({ a: 1, b: { x: 1, y: 2 }, c: 3 }, { b: { y: null, z: 4 }, c: null, d: 5 })`
	out := manifest(t, jsonnet.Config{}, src)
	assert.JSONEq(t, `{"a":1,"b":{"x":1,"z":4},"d":5}`, out)
}

func TestStdAssertEqual(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `std.assertEqual(1 + 1, 2)`)
	assert.Equal(t, "true", out)

	ev, err := jsonnet.NewEvaluator(jsonnet.Config{})
	assert.NoError(t, err)
	_, err = ev.EvaluateSnippet("<test>", `std.assertEqual(1, 2)`)
	assert.Error(t, err)
}

func TestStdArrayLibraryFunctions(t *testing.T) {
	src := `[
		std.mapWithIndex(function(i, x) i + x, [10, 20, 30]),
		std.repeat([1, 2], 3),
		std.repeat("ab", 3),
		std.flattenArrays([[1, 2], [], [3]]),
		std.all([true, true]),
		std.any([false, true]),
		std.find(2, [1, 2, 3, 2]),
		std.member([1, 2, 3], 2),
		std.member("hello", "l"),
		std.count([1, 2, 1, 3, 1], 1),
	]`
	out := manifest(t, jsonnet.Config{}, src)
	assert.JSONEq(t, `[
		[10, 21, 32],
		[1, 2, 1, 2, 1, 2],
		"ababab",
		[1, 2, 3],
		true,
		true,
		[1, 3],
		true,
		true,
		3
	]`, out)
}

func TestStdSortDefaultKey(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `std.sort([3, 1, 2])`)
	assert.JSONEq(t, `[1,2,3]`, out)
}

func TestStdLines(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `std.lines(["a", "b", "c"])`)
	assert.Equal(t, `"a\nb\nc\n"`, out)
}

func TestStdMathLibraryFunctions(t *testing.T) {
	src := `[
		std.abs(-4), std.abs(4), std.sign(-3), std.sign(0), std.sign(3),
		std.max(1, 2), std.min(1, 2), std.clamp(5, 0, 3), std.clamp(-1, 0, 3),
		std.round(2.4), std.round(2.5), std.round(-2.5), std.round(-2.4),
		std.isEven(4), std.isEven(-3), std.isOdd(3), std.isOdd(-4),
	]`
	out := manifest(t, jsonnet.Config{}, src)
	assert.JSONEq(t, `[4,4,-1,0,1,2,1,3,0,2,3,-3,-2,true,false,true,false]`, out)
}

func TestStdManifestJsonWrappers(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `[std.manifestJson({ a: 1 }), std.manifestJsonMinified({ a: 1, b: [1, 2] })]`)
	assert.JSONEq(t, `["{\n    \"a\": 1\n}", "{\"a\": 1,\"b\": [1,2]}"]`, out)
}
