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

package eval

import (
	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
)

// evalImport dispatches to the configured Importer. The Importer owns the
// process-wide import cache and
// cycle detection; this method only adds a call-stack frame and converts
// an unwrapped error into a positioned one.
func (e *Evaluator) evalImport(n *ast.Import, scope *adt.Scope) (adt.Value, error) {
	if e.Importer == nil {
		return nil, errors.New(errors.ImportNotFound, n.Pos(), e.snapshotStack(), "no import resolver configured")
	}
	pop := e.pushFrame(errors.Frame{Pos: n.Pos(), Cause: "import " + n.Path})
	defer pop()

	var (
		v   adt.Value
		err error
	)
	switch n.Kind {
	case ast.ImportString:
		v, err = e.Importer.ImportString(e.CurrentFile, n.Path)
	case ast.ImportBinary:
		v, err = e.Importer.ImportBinary(e.CurrentFile, n.Path)
	default:
		v, err = e.Importer.Import(e.CurrentFile, n.Path)
	}
	if err != nil {
		if ee, ok := err.(errors.Error); ok {
			return nil, ee
		}
		return nil, errors.New(errors.ImportNotFound, n.Pos(), e.snapshotStack(), "%s", err.Error())
	}
	return v, nil
}
