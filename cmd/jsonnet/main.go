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

// Command jsonnet evaluates Jsonnet files and snippets from the shell,
// the thin entrypoint around cmd/jsonnet/cmd's cobra command tree.
package main

import (
	"os"

	"github.com/KimMachineGun/automemlimit/memlimit"

	"github.com/jsonnet-go/jsonnet/cmd/jsonnet/cmd"
)

func main() {
	// Honor a container memory cgroup, if any, the same way any other
	// long-running or large-heap Go CLI in this stack would; harmless
	// (and a no-op) outside a cgroup.
	_, _ = memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(0.9),
		memlimit.WithProvider(memlimit.FromCgroup),
	)

	os.Exit(cmd.Main())
}
