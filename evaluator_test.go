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
	"github.com/stretchr/testify/require"

	"github.com/jsonnet-go/jsonnet"
)

func eval(t *testing.T, cfg jsonnet.Config, src string) jsonnet.Value {
	t.Helper()
	ev, err := jsonnet.NewEvaluator(cfg)
	require.NoError(t, err)
	v, err := ev.EvaluateSnippet("<test>", src)
	require.NoError(t, err)
	return v
}

func manifest(t *testing.T, cfg jsonnet.Config, src string) string {
	t.Helper()
	v := eval(t, cfg, src)
	out, err := jsonnet.Manifest(v, jsonnet.JSON)
	require.NoError(t, err)
	return out
}

func TestBasicObject(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `{ a: 1, b: self.a + 1, c: self.b + 1 }`)
	assert.JSONEq(t, `{"a":1,"b":2,"c":3}`, out)
}

func TestObjectConcatAdditive(t *testing.T) {
	out := manifest(t, jsonnet.Config{}, `{ x: 1 } + { x+: 2 }`)
	assert.JSONEq(t, `{"x":3}`, out)
}

func TestSuperReferencesFieldBelow(t *testing.T) {
	src := `
		local Fib = { n: 1, r: if self.n <= 1 then 1 else (Fib { n: super.n - 1 }).r + (Fib { n: super.n - 2 }).r };
		(Fib { n: 10 }).r
	`
	out := manifest(t, jsonnet.Config{}, src)
	assert.Equal(t, "89", out)
}

func TestExtVarString(t *testing.T) {
	out := manifest(t, jsonnet.Config{
		ExtVars: map[string]jsonnet.Var{"name": jsonnet.Str("world")},
	}, `std.extVar("name")`)
	assert.Equal(t, `"world"`, out)
}

func TestExtVarCode(t *testing.T) {
	out := manifest(t, jsonnet.Config{
		ExtVars: map[string]jsonnet.Var{"n": jsonnet.Code("21 * 2")},
	}, `std.extVar("n")`)
	assert.Equal(t, "42", out)
}

func TestTopLevelArgumentsByName(t *testing.T) {
	ev, err := jsonnet.NewEvaluator(jsonnet.Config{
		TLAVars: map[string]jsonnet.Var{"b": jsonnet.Str("two"), "a": jsonnet.Str("one")},
	})
	require.NoError(t, err)

	v, err := ev.EvaluateSnippet("<test>", `function(a, b) a + "-" + b`)
	require.NoError(t, err)

	out, err := jsonnet.Manifest(v, jsonnet.JSON)
	require.NoError(t, err)
	assert.Equal(t, `"one-two"`, out)
}

func TestManifestYAMLStream(t *testing.T) {
	v := eval(t, jsonnet.Config{}, `[{a: 1}, {b: 2}]`)
	out, err := jsonnet.Manifest(v, jsonnet.YAMLStream)
	require.NoError(t, err)
	assert.Equal(t, 2, countOccurrences(out, "---"))
}

func TestManifestPlainString(t *testing.T) {
	v := eval(t, jsonnet.Config{}, `"hello"`)
	out, err := jsonnet.Manifest(v, jsonnet.PlainString)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestEvaluateMulti(t *testing.T) {
	v := eval(t, jsonnet.Config{}, `{ "a.json": {x: 1}, "b.json": {y: 2} }`)
	files, err := jsonnet.EvaluateMulti(v, jsonnet.JSON)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.JSONEq(t, `{"x":1}`, files["a.json"])
	assert.JSONEq(t, `{"y":2}`, files["b.json"])
}

func TestEvaluateStream(t *testing.T) {
	v := eval(t, jsonnet.Config{}, `[1, 2, 3]`)
	docs, err := jsonnet.EvaluateStream(v, jsonnet.JSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, docs)
}

func TestNativeCallback(t *testing.T) {
	ev, err := jsonnet.NewEvaluator(jsonnet.Config{
		NativeCallbacks: map[string]jsonnet.NativeCallback{
			"double": {
				Params: []string{"x"},
				Func: func(args []interface{}) (interface{}, error) {
					return args[0].(float64) * 2, nil
				},
			},
		},
	})
	require.NoError(t, err)
	v, err := ev.EvaluateSnippet("<test>", `std.native("double")(21)`)
	require.NoError(t, err)
	out, err := jsonnet.Manifest(v, jsonnet.JSON)
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestImportResolverOverride(t *testing.T) {
	files := map[string]string{
		"/virtual/main.jsonnet": `import "lib.jsonnet"`,
		"/virtual/lib.jsonnet":  `{ greeting: "hi" }`,
	}
	ev, err := jsonnet.NewEvaluator(jsonnet.Config{
		Importer: func(from, path string) (jsonnet.ImportResult, error) {
			resolved := "/virtual/" + path
			content, ok := files[resolved]
			if !ok {
				return jsonnet.ImportResult{}, assert.AnError
			}
			return jsonnet.ImportResult{FoundAt: resolved, Content: []byte(content)}, nil
		},
	})
	require.NoError(t, err)

	v, err := ev.EvaluateSnippet("/virtual/main.jsonnet", files["/virtual/main.jsonnet"])
	require.NoError(t, err)
	out, err := jsonnet.Manifest(v, jsonnet.JSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting":"hi"}`, out)
}

func countOccurrences(s, substr string) int {
	n := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			n++
		}
	}
	return n
}
