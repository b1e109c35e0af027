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

package cmd

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jsonnet-go/jsonnet"
)

func TestVarFlagsSetLiteral(t *testing.T) {
	f := newVarFlags(false)
	require.NoError(t, f.Set("name=world"))
	require.Equal(t, jsonnet.Str("world"), f.vars["name"])
}

func TestVarFlagsSetCode(t *testing.T) {
	f := newVarFlags(true)
	require.NoError(t, f.Set("n=21*2"))
	require.Equal(t, jsonnet.Code("21*2"), f.vars["n"])
}

func TestVarFlagsSetFromEnv(t *testing.T) {
	t.Setenv("JSONNET_TEST_VAR", "from-env")
	f := newVarFlags(false)
	require.NoError(t, f.Set("JSONNET_TEST_VAR"))
	require.Equal(t, jsonnet.Str("from-env"), f.vars["JSONNET_TEST_VAR"])
}

func TestVarFlagsSetMissingEnv(t *testing.T) {
	os.Unsetenv("JSONNET_TEST_VAR_MISSING")
	f := newVarFlags(false)
	require.Error(t, f.Set("JSONNET_TEST_VAR_MISSING"))
}

// TestMergePrecedence checks that -code entries win over -str entries
// for the same name when both flag families are merged, since merge
// folds its srcs in argument order.
func TestMergePrecedence(t *testing.T) {
	str := newVarFlags(false)
	require.NoError(t, str.Set("a=one"))
	require.NoError(t, str.Set("b=two"))

	code := newVarFlags(true)
	require.NoError(t, code.Set("a=1+0"))

	got := merge(map[string]jsonnet.Var{}, str, code)
	want := map[string]jsonnet.Var{
		"a": jsonnet.Code("1+0"),
		"b": jsonnet.Str("two"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge() mismatch (-want +got):\n%s", diff)
	}
}

// TestMergeSnapshot pins the rendered shape of a fully populated ext-var
// set so a future change to varFlags/merge's field layout shows up as a
// reviewable diff rather than silently passing.
func TestMergeSnapshot(t *testing.T) {
	extStr := newVarFlags(false)
	require.NoError(t, extStr.Set("region=us-east-1"))
	extCode := newVarFlags(true)
	require.NoError(t, extCode.Set("replicas=2+1"))

	got := merge(map[string]jsonnet.Var{}, extStr, extCode)
	snaps.MatchSnapshot(t, got)
}
