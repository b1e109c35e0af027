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

package cmd_test

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/rogpeppe/go-internal/testscript"

	"github.com/jsonnet-go/jsonnet/cmd/jsonnet/cmd"
)

// TestMain lets the test binary re-exec itself as the `jsonnet` command
// whenever a script under testdata/script runs `exec jsonnet ...`,
// avoiding a real build+PATH dance for CLI integration tests. It also
// sweeps obsolete go-snaps snapshots once every in-process test (e.g.
// TestMergeSnapshot in flags_test.go) has run.
func TestMain(m *testing.M) {
	code := testscript.RunMain(m, map[string]func() int{
		"jsonnet": cmd.Main,
	})
	snaps.Clean(m)
	os.Exit(code)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
