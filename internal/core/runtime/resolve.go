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

package runtime

import (
	"path/filepath"

	"github.com/jsonnet-go/jsonnet/syntax/errors"
	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// resolve finds the file an `import`/`importstr`/`importbin` of path
// refers to, following the reference implementation's search order:
// first relative to the importing file's own directory, then each jpath
// entry in order. An absolute path is used as-is.
func (r *Runtime) resolve(fromFile, path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	candidates := make([]string, 0, 1+len(r.cfg.Jpath))
	if fromFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(fromFile), path))
	} else {
		candidates = append(candidates, path)
	}
	for _, dir := range r.cfg.Jpath {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	for _, c := range candidates {
		abs, err := r.fs.Abs(c)
		if err != nil {
			continue
		}
		if _, err := r.fs.ReadFile(abs); err == nil {
			return abs, nil
		}
	}
	return "", errors.New(errors.ImportNotFound, token.NoPos, nil, "import not found: %q (searched %d locations)", path, len(candidates))
}
