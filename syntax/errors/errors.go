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

// Package errors defines the shared error type used across the parser and
// evaluator: a positioned message plus the evaluation-frame stack live at
// the point of failure.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// Code classifies the kind of failure, per the evaluator's error taxonomy.
type Code int

const (
	// ParseError is surfaced by the scanner/parser, never by the evaluator.
	ParseError Code = iota
	TypeMismatch
	NoSuchField
	IndexOutOfRange
	InvalidKey
	DivisionByZero
	InvalidNumber
	NumericFormat
	UserError
	AssertionFailed
	InfiniteRecursion
	StackOverflow
	ImportNotFound
	ImportCycle
	UnknownVariable
	InvalidContext
	Cancelled
)

func (c Code) String() string {
	switch c {
	case ParseError:
		return "parse error"
	case TypeMismatch:
		return "type mismatch"
	case NoSuchField:
		return "no such field"
	case IndexOutOfRange:
		return "index out of range"
	case InvalidKey:
		return "invalid key"
	case DivisionByZero:
		return "division by zero"
	case InvalidNumber:
		return "invalid number"
	case NumericFormat:
		return "numeric format"
	case UserError:
		return "user error"
	case AssertionFailed:
		return "assertion failed"
	case InfiniteRecursion:
		return "infinite recursion"
	case StackOverflow:
		return "stack overflow"
	case ImportNotFound:
		return "import not found"
	case ImportCycle:
		return "import cycle"
	case UnknownVariable:
		return "unknown variable"
	case InvalidContext:
		return "invalid context"
	case Cancelled:
		return "cancelled"
	}
	return "error"
}

// Frame is one entry of the call-chain captured at the point of failure: a
// location plus a human-readable cause such as "function foo" or "object
// field bar" or "import baz.jsonnet".
type Frame struct {
	Pos   token.Pos
	Cause string
}

func (f Frame) String() string {
	if f.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", f.Pos, f.Cause)
	}
	return f.Cause
}

// Error is the interface implemented by every error this module produces.
type Error interface {
	error
	// Position returns the primary location of the failure.
	Position() token.Pos
	// Stack returns the evaluation frames live at the point of failure,
	// outermost first.
	Stack() []Frame
	// Code classifies the failure.
	Code() Code
}

type evalError struct {
	code  Code
	pos   token.Pos
	msg   string
	stack []Frame
}

func (e *evalError) Error() string {
	var b strings.Builder
	b.WriteString(e.msg)
	for _, f := range e.stack {
		b.WriteString("\n\t")
		b.WriteString(f.String())
	}
	return b.String()
}

func (e *evalError) Position() token.Pos { return e.pos }
func (e *evalError) Stack() []Frame      { return e.stack }
func (e *evalError) Code() Code          { return e.code }

// New creates an Error of the given kind at the given position, with the
// supplied call-stack frames (outermost first).
func New(code Code, pos token.Pos, stack []Frame, format string, args ...any) Error {
	return &evalError{code: code, pos: pos, msg: fmt.Sprintf(format, args...), stack: stack}
}

// WithFrame returns a copy of err with an additional frame prepended to its
// stack, used as an error unwinds back through nested calls/imports/fields.
func WithFrame(err Error, f Frame) Error {
	e, ok := err.(*evalError)
	if !ok {
		return New(err.Code(), err.Position(), append([]Frame{f}, err.Stack()...), "%s", err.Error())
	}
	cp := *e
	cp.stack = append([]Frame{f}, e.stack...)
	return &cp
}

// Is reports whether err carries the given Code.
func Is(err error, code Code) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Code() == code
	}
	return false
}

// As is a re-export of [errors.As] for convenience of callers that only
// import this package.
func As(err error, target any) bool { return errors.As(err, target) }
