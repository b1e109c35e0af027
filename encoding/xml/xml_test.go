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

package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

func TestMarshal(t *testing.T) {
	jsonml := adt.Array{
		adt.Resolved(adt.NewString("top")),
		adt.Resolved(adt.NewNativeObject(map[string]adt.Value{"id": adt.NewString("1")})),
		adt.Resolved(adt.NewString("hello")),
	}
	out, err := Marshal(jsonml)
	require.NoError(t, err)
	assert.Contains(t, out, "<top")
	assert.Contains(t, out, `id="1"`)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "</top>")
}
