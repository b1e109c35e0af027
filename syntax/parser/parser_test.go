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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

var valid = []string{
	"1",
	"null",
	"true && false",
	`"hello " + "world"`,
	`local x = 1, y = x + 1; x + y`,
	`{ a: 1, b:: 2, c::: 3, d+: 4 }`,
	`{ ['k' + i]: i for i in [1, 2, 3] }`,
	`[x * 2 for x in [1, 2, 3] if x > 1]`,
	`function(a, b=1) a + b`,
	`std.foo(1, bar=2) tailstrict`,
	`self.x + super.y`,
	`assert 1 < 2 : "unreachable"; true`,
	`if x then 1 else 2`,
	`import "foo.jsonnet"`,
	`importstr "foo.txt"`,
	`|||
  first
  second
|||`,
	`{ local a = 1, b: a } { c: 2 }`,
}

func TestParseValid(t *testing.T) {
	for _, src := range valid {
		t.Run(src, func(t *testing.T) {
			_, err := ParseSnippet(t.Name(), []byte(src))
			require.NoError(t, err)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		`local x = 1 x`,
		`{ a: 1 b: 2 }`,
		`function(a a) a`,
		`f(a=1, b)`,
	}
	for _, src := range invalid {
		t.Run(src, func(t *testing.T) {
			_, err := ParseSnippet(t.Name(), []byte(src))
			assert.Error(t, err)
		})
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	e, err := ParseSnippet("t", []byte("1 + 2 * 3"))
	require.NoError(t, err)
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseObjectApplySugar(t *testing.T) {
	e, err := ParseSnippet("t", []byte(`{ a: 1 } { b: 2 }`))
	require.NoError(t, err)
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	_, ok = bin.Left.(*ast.Object)
	assert.True(t, ok)
	_, ok = bin.Right.(*ast.Object)
	assert.True(t, ok)
}

func TestParseNamedArgs(t *testing.T) {
	e, err := ParseSnippet("t", []byte(`f(1, y=2)`))
	require.NoError(t, err)
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	assert.Equal(t, ast.Identifier(""), call.Args[0].Name)
	assert.Equal(t, ast.Identifier("y"), call.Args[1].Name)
}

func TestParseTextBlock(t *testing.T) {
	e, err := ParseSnippet("t", []byte("|||\n  one\n  two\n|||\n"))
	require.NoError(t, err)
	s, ok := e.(*ast.String)
	require.True(t, ok)
	assert.Equal(t, ast.StringBlock, s.Kind)
	assert.Equal(t, "one\ntwo\n", s.Value)
}
