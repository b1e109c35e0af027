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

// This file implements the value-level semantics of Jsonnet's binary
// operators: operations that, given already-forced Values, need no
// further AST or scope context. The evaluator forces both operands and
// delegates here; object field `+:` combination (§4.2) reuses Add
// directly, since additive-field merging is defined in terms of the same
// operator.
package adt

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Add implements `+`. Two numbers add; if either side is a string, the
// other is coerced to its display form and the two are concatenated; two
// arrays concatenate (sharing the original thunks); two objects compose
// their layers.
func Add(a, b Value) (Value, error) {
	if as, ok := a.(String); ok {
		bs, err := DisplayString(b)
		if err != nil {
			return nil, err
		}
		return append(append(String{}, as...), NewString(bs)...), nil
	}
	if bs, ok := b.(String); ok {
		as, err := DisplayString(a)
		if err != nil {
			return nil, err
		}
		return append(NewString(as), bs...), nil
	}
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return nil, &TypeError{Expected: "number", Got: b.Kind().String()}
		}
		return av + bv, nil
	case Array:
		bv, ok := b.(Array)
		if !ok {
			return nil, &TypeError{Expected: "array", Got: b.Kind().String()}
		}
		out := make(Array, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out, nil
	case *Object:
		bv, ok := b.(*Object)
		if !ok {
			return nil, &TypeError{Expected: "object", Got: b.Kind().String()}
		}
		return av.Concat(bv), nil
	}
	return nil, &TypeError{Expected: "number, string, array, or object", Got: a.Kind().String()}
}

// numeric requires both operands be Number, returning a TypeMismatch-style
// error naming the offending kind otherwise.
func numeric(a, b Value) (Number, Number, error) {
	av, ok := a.(Number)
	if !ok {
		return 0, 0, &TypeError{Expected: "number", Got: a.Kind().String()}
	}
	bv, ok := b.(Number)
	if !ok {
		return 0, 0, &TypeError{Expected: "number", Got: b.Kind().String()}
	}
	return av, bv, nil
}

// ErrDivByZero is returned by Div and Mod for a zero divisor.
var ErrDivByZero = divByZeroError{}

type divByZeroError struct{}

func (divByZeroError) Error() string { return "division by zero" }

func Sub(a, b Value) (Value, error) {
	av, bv, err := numeric(a, b)
	if err != nil {
		return nil, err
	}
	return av - bv, nil
}

func Mul(a, b Value) (Value, error) {
	av, bv, err := numeric(a, b)
	if err != nil {
		return nil, err
	}
	return av * bv, nil
}

func Div(a, b Value) (Value, error) {
	av, bv, err := numeric(a, b)
	if err != nil {
		return nil, err
	}
	if bv == 0 {
		return nil, ErrDivByZero
	}
	return av / bv, nil
}

// Mod implements numeric `%` as IEEE remainder with the sign of the
// dividend (Go's math.Mod already has this behavior, matching C's fmod).
// `%` with a string LHS is printf-style formatting, handled by the
// evaluator via the stdlib `format` intrinsic, not here.
func Mod(a, b Value) (Value, error) {
	av, bv, err := numeric(a, b)
	if err != nil {
		return nil, err
	}
	if bv == 0 {
		return nil, ErrDivByZero
	}
	return Number(math.Mod(float64(av), float64(bv))), nil
}

// Equal implements `==`/`!=`: deep structural equality. Functions are
// never equal, even to themselves.
func Equal(a, b Value) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, nil
	}
	switch av := a.(type) {
	case Null:
		return true, nil
	case Bool:
		return av == b.(Bool), nil
	case Number:
		return av == b.(Number), nil
	case String:
		return string(av) == string(b.(String)), nil
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false, nil
		}
		for i := range av {
			ae, err := av[i].Force()
			if err != nil {
				return false, err
			}
			be, err := bv[i].Force()
			if err != nil {
				return false, err
			}
			eq, err := Equal(ae, be)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Object:
		bv := b.(*Object)
		an := av.FieldNames(false)
		bn := bv.FieldNames(false)
		if len(an) != len(bn) {
			return false, nil
		}
		for i := range an {
			if an[i] != bn[i] {
				return false, nil
			}
		}
		for _, name := range an {
			at, err := av.Field(name)
			if err != nil {
				return false, err
			}
			aval, err := at.Force()
			if err != nil {
				return false, err
			}
			bt, err := bv.Field(name)
			if err != nil {
				return false, err
			}
			bval, err := bt.Force()
			if err != nil {
				return false, err
			}
			eq, err := Equal(aval, bval)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Function:
		return false, nil
	}
	return false, nil
}

// Compare orders two values of the same kind (number, string, or array),
// returning -1/0/1. Lexicographic order applies to strings and arrays.
func Compare(a, b Value) (int, error) {
	if a.Kind() != b.Kind() {
		return 0, &TypeError{Expected: a.Kind().String(), Got: b.Kind().String()}
	}
	switch av := a.(type) {
	case Number:
		bv := b.(Number)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case String:
		return strings.Compare(string(av), string(b.(String))), nil
	case Array:
		bv := b.(Array)
		for i := 0; i < len(av) && i < len(bv); i++ {
			ae, err := av[i].Force()
			if err != nil {
				return 0, err
			}
			be, err := bv[i].Force()
			if err != nil {
				return 0, err
			}
			c, err := Compare(ae, be)
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		switch {
		case len(av) < len(bv):
			return -1, nil
		case len(av) > len(bv):
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, &TypeError{Expected: "number, string, or array", Got: a.Kind().String()}
}

// DisplayString renders v the way the `+` operator's implicit string
// coercion does: primitives print their natural form, arrays and objects
// print as compact (non-pretty) JSON. It forces any thunks it encounters.
func DisplayString(v Value) (string, error) {
	var b strings.Builder
	if err := writeDisplay(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeDisplay(b *strings.Builder, v Value) error {
	switch x := v.(type) {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(x.String())
	case Number:
		b.WriteString(formatNumber(float64(x)))
	case String:
		b.WriteString(string(x))
	case Array:
		b.WriteByte('[')
		for i, t := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			ev, err := t.Force()
			if err != nil {
				return err
			}
			if err := writeDisplayQuoted(b, ev); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *Object:
		b.WriteByte('{')
		names := x.FieldNames(false)
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", name)
			t, err := x.Field(name)
			if err != nil {
				return err
			}
			fv, err := t.Force()
			if err != nil {
				return err
			}
			if err := writeDisplayQuoted(b, fv); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case *Function:
		return &TypeError{Expected: "non-function", Got: "function"}
	}
	return nil
}

// writeDisplayQuoted is writeDisplay except strings render quoted, since
// nested strings inside an array/object display need their delimiters
// (only the operator's top-level operand prints unquoted).
func writeDisplayQuoted(b *strings.Builder, v Value) error {
	if s, ok := v.(String); ok {
		fmt.Fprintf(b, "%q", string(s))
		return nil
	}
	return writeDisplay(b, v)
}

// formatNumber renders a float64 using the shortest round-tripping
// decimal, matching Jsonnet's number-manifestation rule (§9).
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// SortByKey stably sorts values using the given less function, used by
// std.sort/std.set and friends.
func SortByKey(vals []Value, less func(a, b Value) bool) {
	sort.SliceStable(vals, func(i, j int) bool { return less(vals[i], vals[j]) })
}
