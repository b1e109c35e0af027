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

package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

func TestUnmarshalMarshalRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"empty", "null"},
		{"string", `"foo"`},
		{"struct", "a: foo\nb: bar"},
		{"nested list", "a:\n  - 1\n  - 2\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Unmarshal([]byte(tc.yaml))
			require.NoError(t, err)

			out, err := Marshal(v)
			require.NoError(t, err)

			v2, err := Unmarshal([]byte(out))
			require.NoError(t, err)
			out2, err := Marshal(v2)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(out), strings.TrimSpace(out2))
		})
	}
}

func TestMarshalStream(t *testing.T) {
	docs := adt.Array{
		adt.Resolved(adt.NewNativeObject(map[string]adt.Value{"a": adt.NewString("foo")})),
		adt.Resolved(adt.NewNativeObject(map[string]adt.Value{"b": adt.NewString("bar")})),
	}
	out, err := MarshalStream(docs)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "---"))
}

func TestUnmarshalScalars(t *testing.T) {
	v, err := Unmarshal([]byte("42"))
	require.NoError(t, err)
	n, ok := v.(adt.Number)
	require.True(t, ok)
	assert.Equal(t, adt.Number(42), n)
}
