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
	"fmt"
	"runtime/debug"
)

// version reports the module version embedded by the Go toolchain at
// build time (the (devel) placeholder outside a tagged release).
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "jsonnet (unknown version)"
	}
	return fmt.Sprintf("jsonnet %s", info.Main.Version)
}
