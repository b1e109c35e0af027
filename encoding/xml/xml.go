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

// Package xml renders evaluated Jsonnet values as XML, the same
// rendering std.manifestXmlJsonml exposes inside a Jsonnet program.
//
// The value must already be in JsonML form, i.e. [tag, {attrs}?,
// children...] nested arrays; Jsonnet has no XML parser intrinsic, so
// this package is manifestation-only, with no corresponding Unmarshal.
package xml

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/internal/stdlib"
)

// Marshal renders v, a JsonML array, as XML.
func Marshal(v adt.Value) (string, error) {
	return stdlib.ManifestXMLJsonml(v)
}
