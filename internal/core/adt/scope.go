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

import "github.com/jsonnet-go/jsonnet/syntax/ast"

// Scope is an immutable lexical environment: a mapping from identifiers to
// thunks, plus the three dynamic slots that give Jsonnet's object model its
// late-binding semantics. Scopes are extended, never mutated; a child scope
// shadows its parent's bindings.
type Scope struct {
	parent *Scope
	binds  map[ast.Identifier]*Thunk

	self  Value // current object, for field bodies; nil outside one
	super Value // layers below self, for super.x; nil outside one
	dollar Value // the outermost object, set once and inherited
}

// NewRootScope creates the empty top-level scope of an evaluation.
func NewRootScope() *Scope {
	return &Scope{}
}

// WithBind returns a child scope with one additional binding.
func (s *Scope) WithBind(name ast.Identifier, t *Thunk) *Scope {
	return &Scope{parent: s, binds: map[ast.Identifier]*Thunk{name: t}, self: s.self, super: s.super, dollar: s.dollar}
}

// WithBinds returns a child scope with several additional, mutually
// visible bindings (e.g. a `local` clause's simultaneous binds).
func (s *Scope) WithBinds(binds map[ast.Identifier]*Thunk) *Scope {
	return &Scope{parent: s, binds: binds, self: s.self, super: s.super, dollar: s.dollar}
}

// WithObjectContext returns a child scope with self/super/$ set for
// evaluating a field body. dollar is only set to self when unset in the
// parent (i.e. at the first, outermost object); once set it is inherited
// unchanged by every nested scope.
func (s *Scope) WithObjectContext(self, super Value) *Scope {
	dollar := s.dollar
	if dollar == nil {
		dollar = self
	}
	return &Scope{parent: s, self: self, super: super, dollar: dollar}
}

// Lookup resolves name, walking outward through enclosing scopes.
func (s *Scope) Lookup(name ast.Identifier) (*Thunk, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.binds != nil {
			if t, ok := sc.binds[name]; ok {
				return t, true
			}
		}
	}
	return nil, false
}

// Self returns the current self slot and whether one is set.
func (s *Scope) Self() (Value, bool) { return s.self, s.self != nil }

// Super returns the current super slot and whether one is set.
func (s *Scope) Super() (Value, bool) { return s.super, s.super != nil }

// Dollar returns the current $ slot and whether one is set.
func (s *Scope) Dollar() (Value, bool) { return s.dollar, s.dollar != nil }
