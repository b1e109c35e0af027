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

package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

func TestUnmarshal(t *testing.T) {
	data := []byte(`
title = "example"

[owner]
name = "tom"

[[servers]]
host = "alpha"

[[servers]]
host = "beta"
`)
	v, err := Unmarshal(data)
	require.NoError(t, err)

	obj, ok := v.(*adt.Object)
	require.True(t, ok)

	th, err := obj.Field("title")
	require.NoError(t, err)
	tv, err := th.Force()
	require.NoError(t, err)
	assert.Equal(t, adt.NewString("example"), tv)

	sh, err := obj.Field("servers")
	require.NoError(t, err)
	sv, err := sh.Force()
	require.NoError(t, err)
	arr, ok := sv.(adt.Array)
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestMarshal(t *testing.T) {
	v, err := Unmarshal([]byte(`name = "tom"` + "\n" + `age = 30` + "\n"))
	require.NoError(t, err)

	out, err := Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, out, "tom")
	assert.Contains(t, out, "name")
}
