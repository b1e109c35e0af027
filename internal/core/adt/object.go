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

package adt

import (
	"fmt"
	"sort"

	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// Visibility is the resolved visibility of a composed field, after
// following any chain of `:` (inherit) declarations down to a concrete
// declaration or defaulting to Visible.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

// FieldDescriptor is one field declaration within a single Layer.
type FieldDescriptor struct {
	Visibility ast.Visibility
	Additive   bool
	Body       ast.Expr
	Scope      *Scope // capture scope, without self/super/$ set

	// Native, when set, is the field's value directly; Body/Scope are
	// ignored. Used for standard-library objects whose fields are Go
	// functions rather than Jsonnet expressions.
	Native Value
}

// AssertDescriptor is one `assert` declared inside an object literal.
type AssertDescriptor struct {
	Cond  ast.Expr
	Msg   ast.Expr // nil for the default message
	Scope *Scope
}

// Layer is one contribution to an Object: the fields and asserts
// introduced by a single object literal or comprehension.
type Layer struct {
	Fields  map[string]FieldDescriptor
	Asserts []AssertDescriptor
}

// NewLayer creates an empty Layer ready to receive fields.
func NewLayer() *Layer {
	return &Layer{Fields: map[string]FieldDescriptor{}}
}

// Object is an ordered sequence of Layers, bottommost first (Layers[0] is
// the "oldest"/bottommost contribution; later indices are layers added on
// top by `+`). Concatenation never copies a Layer; only the slice of
// references grows.
type Object struct {
	Layers []*Layer
	forcer Forcer

	fieldCache  map[string]*Thunk
	assertsDone bool
	assertsErr  error
}

// NewObject composes layers (bottommost first) into an Object. forcer
// evaluates a field or assert body expression under a scope; it is
// supplied by the evaluator that constructs the object.
func NewObject(layers []*Layer, forcer Forcer) *Object {
	return &Object{Layers: layers, forcer: forcer, fieldCache: map[string]*Thunk{}}
}

func (*Object) Kind() Kind { return ObjectKind }
func (o *Object) String() string {
	return fmt.Sprintf("object<%d layers>", len(o.Layers))
}

// Concat implements object `+`: layer sequences are concatenated, no layer
// is cloned, and neither operand's cached field values are reused (the
// composed object has its own identity and its own memoization).
func (o *Object) Concat(other *Object) *Object {
	layers := make([]*Layer, 0, len(o.Layers)+len(other.Layers))
	layers = append(layers, o.Layers...)
	layers = append(layers, other.Layers...)
	return NewObject(layers, o.forcer)
}

// layerOccurrence is one layer's declaration of a given field name.
type layerOccurrence struct {
	idx  int
	desc FieldDescriptor
}

// occurrences scans layers from topmost to bottommost collecting every
// declaration of name, stopping as soon as a non-additive declaration is
// found (per §4.2 step 1-2). The result is returned bottommost-first: its
// first element is the defining layer (a genuine override, or, when every
// declaration was additive, the bottommost one acting as an empty base).
func (o *Object) occurrences(name string) []layerOccurrence {
	var descending []layerOccurrence
	for i := len(o.Layers) - 1; i >= 0; i-- {
		fd, ok := o.Layers[i].Fields[name]
		if !ok {
			continue
		}
		descending = append(descending, layerOccurrence{i, fd})
		if !fd.Additive {
			break
		}
	}
	for l, r := 0, len(descending)-1; l < r; l, r = l+1, r-1 {
		descending[l], descending[r] = descending[r], descending[l]
	}
	return descending
}

// Has reports whether name is declared in any layer, optionally including
// hidden fields.
func (o *Object) Has(name string, includeHidden bool) bool {
	occ := o.occurrences(name)
	if len(occ) == 0 {
		return false
	}
	if includeHidden {
		return true
	}
	vis := o.visibility(name, occ)
	return vis == Visible
}

// FieldNames returns the sorted set of distinct field names declared
// across all layers, optionally including hidden fields. Declaration
// order is not preserved (see spec.md's field-order Non-goal); sorted
// order gives deterministic, easy-to-test output.
func (o *Object) FieldNames(includeHidden bool) []string {
	seen := map[string]bool{}
	for _, l := range o.Layers {
		for name := range l.Fields {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		if includeHidden || o.visibleHasName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (o *Object) visibleHasName(name string) bool {
	occ := o.occurrences(name)
	return len(occ) > 0 && o.visibility(name, occ) == Visible
}

func (o *Object) visibility(name string, occ []layerOccurrence) Visibility {
	base := occ[0]
	var vis Visibility
	switch base.desc.Visibility {
	case ast.VisHidden:
		vis = Hidden
	case ast.VisForced:
		vis = Visible
	default: // ast.VisInherit
		vis = o.nearestVisibility(name, base.idx-1)
	}
	for _, c := range occ[1:] {
		if c.desc.Visibility == ast.VisForced {
			vis = Visible
		}
	}
	return vis
}

// nearestVisibility looks below index `start` for the nearest concrete
// (non-inherit) visibility declaration of name, defaulting to Visible.
func (o *Object) nearestVisibility(name string, start int) Visibility {
	for i := start; i >= 0; i-- {
		fd, ok := o.Layers[i].Fields[name]
		if !ok {
			continue
		}
		switch fd.Visibility {
		case ast.VisHidden:
			return Hidden
		case ast.VisForced:
			return Visible
		}
		// ast.VisInherit: keep looking further down.
	}
	return Visible
}

// Field resolves name per §4.2, returning the (memoized) thunk for its
// composed value. The returned error is *FieldError when name is not
// declared anywhere in the object.
func (o *Object) Field(name string) (*Thunk, error) {
	if err := o.ensureAsserts(); err != nil {
		return nil, err
	}
	if t, ok := o.fieldCache[name]; ok {
		return t, nil
	}
	occ := o.occurrences(name)
	if len(occ) == 0 {
		return nil, &FieldError{Name: name}
	}
	t := NewThunk(nil, nil, func(ast.Expr, *Scope) (Value, error) {
		return o.computeField(occ)
	})
	o.fieldCache[name] = t
	return t, nil
}

// Visibility reports the resolved visibility of a declared field; it is
// the caller's responsibility to check Has first.
func (o *Object) Visibility(name string) Visibility {
	return o.visibility(name, o.occurrences(name))
}

func (o *Object) computeField(occ []layerOccurrence) (Value, error) {
	base := occ[0]
	self := Value(o)
	val, err := o.evalFieldBody(base.desc, self, o.layersBelow(base.idx))
	if err != nil {
		return nil, err
	}
	for _, c := range occ[1:] {
		upper, err := o.evalFieldBody(c.desc, self, o.layersBelow(c.idx))
		if err != nil {
			return nil, err
		}
		val, err = Add(val, upper)
		if err != nil {
			return nil, err
		}
	}
	return val, nil
}

func (o *Object) evalFieldBody(fd FieldDescriptor, self, super Value) (Value, error) {
	if fd.Native != nil {
		return fd.Native, nil
	}
	scope := fd.Scope.WithObjectContext(self, super)
	return o.forcer(fd.Body, scope)
}

// NewNativeObject builds a single-layer Object whose fields are Go values
// (typically *Function) rather than Jsonnet expressions, used for the
// standard library root and similar host-provided objects. Every field is
// Visible and non-additive.
func NewNativeObject(fields map[string]Value) *Object {
	layer := NewLayer()
	for name, v := range fields {
		layer.Fields[name] = FieldDescriptor{Native: v}
	}
	return NewObject([]*Layer{layer}, nil)
}

// NewNativeObjectFromLayer wraps a caller-built Layer (whose
// FieldDescriptors may mix Native values with explicit Visibility, as
// produced by std.prune/std.mergePatch/std.objectRemoveKey snapshots)
// as a single-layer Object.
func NewNativeObjectFromLayer(layer *Layer) *Object {
	return NewObject([]*Layer{layer}, nil)
}

// layersBelow returns the sub-object consisting of every layer strictly
// below idx, used as `super` when evaluating the layer at idx.
func (o *Object) layersBelow(idx int) *Object {
	return NewObject(o.Layers[:idx], o.forcer)
}

// ensureAsserts runs every layer's assertions exactly once, memoizing
// failure so a second access re-raises the same error without re-running
// side-effecting assertions (e.g. std.trace inside a message expression).
func (o *Object) ensureAsserts() error {
	if o.assertsDone {
		return o.assertsErr
	}
	o.assertsDone = true
	self := Value(o)
	for i, l := range o.Layers {
		super := o.layersBelow(i)
		for _, a := range l.Asserts {
			scope := a.Scope.WithObjectContext(self, super)
			cond, err := o.forcer(a.Cond, scope)
			if err != nil {
				o.assertsErr = err
				return err
			}
			b, ok := cond.(Bool)
			if !ok {
				o.assertsErr = &TypeError{Expected: "boolean", Got: cond.Kind().String()}
				return o.assertsErr
			}
			if !bool(b) {
				msg := "Assertion failed"
				if a.Msg != nil {
					m, err := o.forcer(a.Msg, scope)
					if err != nil {
						o.assertsErr = err
						return err
					}
					if s, ok := m.(String); ok {
						msg = s.String()
					}
				}
				o.assertsErr = &AssertError{Message: msg}
				return o.assertsErr
			}
		}
	}
	return nil
}

// FieldError reports that a name was not declared by any layer of an
// Object.
type FieldError struct{ Name string }

func (e *FieldError) Error() string { return fmt.Sprintf("field does not exist: %q", e.Name) }

// TypeError reports a kind mismatch in an operation.
type TypeError struct{ Expected, Got string }

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// AssertError reports a failed object or top-level assertion.
type AssertError struct{ Message string }

func (e *AssertError) Error() string { return e.Message }
