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

package json

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"a": 32}`)))
	assert.True(t, Valid([]byte(`[1, 2, 3]`)))
	assert.False(t, Valid([]byte(`{"a": }`)))
	assert.False(t, Valid([]byte(`[3_]`)))
}

func TestUnmarshal(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{{
		name: "object",
		in:   `{"a": 32}`,
		want: `{"a": 32}`,
	}, {
		name: "nested",
		in:   `{"a":32,"b":[1,2],"c-d":"foo-bar-baz"}`,
		want: `{"a": 32, "b": [1, 2], "c-d": "foo-bar-baz"}`,
	}, {
		name: "string with escapes",
		in:   `"a\nb\nc\\\t\nd/"`,
		want: `"a\nb\nc\\\t\nd/"`,
	}, {
		name: "numeric string keys",
		in:   `{"20": "a"}`,
		want: `{"20": "a"}`,
	}, {
		name:    "invalid JSON",
		in:      `[3_]`,
		wantErr: "invalid JSON",
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Unmarshal([]byte(tc.in))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := Marshal(v, "")
			require.NoError(t, err)
			assert.Equal(t, normalizeJSON(tc.want), normalizeJSON(got))
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	v, err := Unmarshal([]byte(`{"a":32,"b":[1,2]}`))
	require.NoError(t, err)

	out, err := Marshal(v, "   ")
	require.NoError(t, err)
	assert.Equal(t, "{\n   \"a\": 32,\n   \"b\": [\n      1,\n      2\n   ]\n}", out)
}

// normalizeJSON strips incidental whitespace so tests can compare
// compact and indented renderings of the same value.
func normalizeJSON(s string) string {
	f := strings.Fields(s)
	return strings.Join(f, "")
}
